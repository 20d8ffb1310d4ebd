package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

type RouterConfig struct {
	ServiceName string
	// RequestLogging turns on httplog's structured access log.
	RequestLogging bool
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)

	if cfg.RequestLogging {
		name := cfg.ServiceName
		if name == "" {
			name = "article-crew"
		}
		r.Use(httplog.RequestLogger(httplog.NewLogger(name, httplog.Options{JSON: true})))
	} else {
		r.Use(middleware.RequestID, middleware.Recoverer)
	}

	r.Get("/", h.Index)
	r.Post("/generate", h.Generate)
	r.Get("/download/{id}", h.Download)
	r.Post("/api/articles", h.CreateArticle)
	r.Get("/healthz", h.Health)

	return r
}
