package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strconv"

	"article-crew/internal/application/port/input"
	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/artifact"
	"article-crew/internal/infrastructure/markdown"

	"github.com/go-chi/chi/v5"
)

const (
	maxFormBytes = 64 << 10

	warningAPIKey = "Por favor, ingrese su clave de API de OpenAI."
	warningTopic  = "Por favor, ingrese un tema para el artículo."
	errorPrefix   = "Ocurrió un error: "
)

type Handler struct {
	generator input.ArticleGenerator
	artifacts output.ArtifactStore
	logger    output.LoggerPort
	tmpl      *template.Template
	model     string
}

type pageData struct {
	Model       string
	Topic       string
	Warning     string
	Error       string
	Article     template.HTML
	DownloadURL string
	FileName    string
}

func NewHandler(
	generator input.ArticleGenerator,
	artifacts output.ArtifactStore,
	logger output.LoggerPort,
	model string,
) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		generator: generator,
		artifacts: artifacts,
		logger:    logger,
		tmpl:      tmpl,
		model:     model,
	}, nil
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageData{Model: h.model})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, pageData{Model: h.model, Error: errorPrefix + err.Error()})
		return
	}

	req := entity.ArticleRequest{
		APIKey: r.PostFormValue("api_key"),
		Topic:  r.PostFormValue("topic"),
	}
	data := pageData{Model: h.model, Topic: req.Topic}

	outcome := h.generator.Generate(r.Context(), req)
	switch outcome.Kind {
	case entity.OutcomeMissingInput:
		data.Warning = warningFor(outcome.Missing)
		h.render(w, http.StatusUnprocessableEntity, data)

	case entity.OutcomeFailed:
		data.Error = errorPrefix + outcome.Detail
		h.render(w, http.StatusBadGateway, data)

	case entity.OutcomeSucceeded:
		saved, err := h.artifacts.Save(r.Context(), outcome.Article)
		if err != nil {
			h.logger.Error("Failed to store artifact", "error", err)
			data.Error = errorPrefix + err.Error()
			h.render(w, http.StatusInternalServerError, data)
			return
		}
		data.Article = markdown.ToHTML(outcome.Article.Text)
		data.DownloadURL = downloadURL(saved.ID)
		data.FileName = saved.FileName
		h.render(w, http.StatusOK, data)
	}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.artifacts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, artifact.ErrArtifactNotFound) {
			http.Error(w, "artículo no encontrado o expirado", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to load artifact", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Content)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error("Failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func warningFor(field entity.InputField) string {
	if field == entity.FieldAPIKey {
		return warningAPIKey
	}
	return warningTopic
}

func downloadURL(id string) string {
	return "/download/" + id
}
