package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/artifact"
	"article-crew/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type fakeGenerator struct {
	calls    int
	requests []entity.ArticleRequest
	text     string
	err      error
}

func (g *fakeGenerator) Generate(ctx context.Context, req entity.ArticleRequest) entity.Outcome {
	if field, ok := entity.ValidateRequest(req); !ok {
		return entity.MissingInput(field)
	}
	g.calls++
	g.requests = append(g.requests, req)
	if g.err != nil {
		return entity.Failed(g.err)
	}
	return entity.Succeeded(entity.Article{Topic: req.Topic, Text: g.text})
}

func newTestServer(t *testing.T, gen *fakeGenerator) *httptest.Server {
	t.Helper()
	h, err := NewHandler(gen, artifact.NewMemoryStore(0), logger.NewNop(), "gpt-3.5-turbo")
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(h, RouterConfig{}))
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, srv *httptest.Server, apiKey, topic string) (*http.Response, *html.Node) {
	t.Helper()
	resp, err := http.PostForm(srv.URL+"/generate", url.Values{"api_key": {apiKey}, "topic": {topic}})
	require.NoError(t, err)
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findByAttr(n *html.Node, key, val string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == key && a.Val == val {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByAttr(c, key, val); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestIndex_RendersForm(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)

	key := findByID(doc, "api_key")
	require.NotNil(t, key)
	assert.Equal(t, "password", attr(key, "type"))
	assert.NotNil(t, findByID(doc, "topic"))
	assert.NotNil(t, findByID(doc, "submit"))
	assert.Nil(t, findByID(doc, "download"))
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	srv := newTestServer(t, gen)

	resp, doc := postForm(t, srv, "", "Inteligencia artificial")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	warning := findByAttr(doc, "data-kind", "warning")
	require.NotNil(t, warning)
	assert.Equal(t, "Por favor, ingrese su clave de API de OpenAI.", textOf(warning))
	assert.Equal(t, 0, gen.calls)
	assert.Nil(t, findByID(doc, "download"))
}

func TestGenerate_MissingTopic(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	srv := newTestServer(t, gen)

	resp, doc := postForm(t, srv, "sk-test", "")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	warning := findByAttr(doc, "data-kind", "warning")
	require.NotNil(t, warning)
	assert.Equal(t, "Por favor, ingrese un tema para el artículo.", textOf(warning))
	assert.Equal(t, 0, gen.calls)
}

func TestGenerate_WhitespaceTopicIsAccepted(t *testing.T) {
	gen := &fakeGenerator{text: "cuerpo"}
	srv := newTestServer(t, gen)

	resp, doc := postForm(t, srv, "sk-test", "   ")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, gen.calls)
	assert.Nil(t, findByAttr(doc, "data-kind", "warning"))

	link := findByID(doc, "download")
	require.NotNil(t, link)
	assert.Equal(t, "articulo____.txt", attr(link, "download"))
}

func TestGenerate_KeyIsNotEchoed(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{text: "cuerpo"})

	resp, err := http.PostForm(srv.URL+"/generate", url.Values{"api_key": {"sk-secret-value"}, "topic": {"Go"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "sk-secret-value")
	assert.Contains(t, string(body), `value="Go"`)
}

func TestGenerate_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("invalid api key")}
	srv := newTestServer(t, gen)

	resp, doc := postForm(t, srv, "sk-bad", "Energía solar")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 1, gen.calls)

	errNode := findByAttr(doc, "data-kind", "error")
	require.NotNil(t, errNode)
	assert.Equal(t, "Ocurrió un error: invalid api key", textOf(errNode))
	assert.Nil(t, findByID(doc, "download"))
	assert.Nil(t, findByID(doc, "article-body"))
}

func TestGenerate_SuccessAndDownload(t *testing.T) {
	text := "# Título\n\nTexto con acentos: á é í ó ú ñ.\n"
	gen := &fakeGenerator{text: text}
	srv := newTestServer(t, gen)

	resp, doc := postForm(t, srv, "sk-test", "Inteligencia  artificial hoy")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Inteligencia  artificial hoy", gen.requests[0].Topic)

	body := findByID(doc, "article-body")
	require.NotNil(t, body)
	assert.Contains(t, textOf(body), "Título")

	link := findByID(doc, "download")
	require.NotNil(t, link)
	assert.Equal(t, "articulo_Inteligencia__artificial_hoy.txt", attr(link, "download"))
	href := attr(link, "href")
	require.True(t, strings.HasPrefix(href, "/download/"))

	dl, err := http.Get(srv.URL + href)
	require.NoError(t, err)
	defer dl.Body.Close()

	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", dl.Header.Get("Content-Type"))

	disposition, params, err := mime.ParseMediaType(dl.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, "articulo_Inteligencia__artificial_hoy.txt", params["filename"])

	content, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte(text), content)
}

func TestGenerate_SanitizesArticleHTML(t *testing.T) {
	gen := &fakeGenerator{text: "Hola<script>alert(1)</script>"}
	srv := newTestServer(t, gen)

	_, doc := postForm(t, srv, "sk-test", "Go")

	body := findByID(doc, "article-body")
	require.NotNil(t, body)
	var scripts int
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			scripts++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	assert.Zero(t, scripts)
}

func TestDownload_UnknownID(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(srv.URL + "/download/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateArticle_JSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		genErr     error
		wantStatus int
		check      func(t *testing.T, got articleResponse)
	}{
		{
			name:       "missing key",
			body:       `{"api_key":"","topic":"Go"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, got articleResponse) {
				assert.Equal(t, "api_key", got.Field)
				assert.Equal(t, warningAPIKey, got.Warning)
			},
		},
		{
			name:       "missing topic",
			body:       `{"api_key":"sk","topic":""}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, got articleResponse) {
				assert.Equal(t, "topic", got.Field)
				assert.Equal(t, warningTopic, got.Warning)
			},
		},
		{
			name:       "failure",
			body:       `{"api_key":"sk","topic":"Go"}`,
			genErr:     errors.New("boom"),
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, got articleResponse) {
				assert.Equal(t, "Ocurrió un error: boom", got.Error)
				assert.Empty(t, got.DownloadURL)
			},
		},
		{
			name:       "success",
			body:       `{"api_key":"sk","topic":"Go concurrente"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got articleResponse) {
				assert.Equal(t, "artículo", got.Article)
				assert.Equal(t, "articulo_Go_concurrente.txt", got.FileName)
				assert.True(t, strings.HasPrefix(got.DownloadURL, "/download/"))
			},
		},
		{
			name:       "malformed body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, got articleResponse) {
				assert.NotEmpty(t, got.Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeGenerator{text: "artículo", err: tt.genErr})

			resp, err := http.Post(srv.URL+"/api/articles", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var got articleResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			tt.check(t, got)
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}
