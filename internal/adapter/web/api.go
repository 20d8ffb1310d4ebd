package web

import (
	"encoding/json"
	"net/http"

	"article-crew/internal/domain/entity"
)

type articleRequest struct {
	APIKey string `json:"api_key"`
	Topic  string `json:"topic"`
}

type articleResponse struct {
	Article     string `json:"article,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
	Warning     string `json:"warning,omitempty"`
	Field       string `json:"field,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CreateArticle is the JSON form of Generate for scripted clients.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, articleResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	outcome := h.generator.Generate(r.Context(), entity.ArticleRequest{APIKey: body.APIKey, Topic: body.Topic})
	switch outcome.Kind {
	case entity.OutcomeMissingInput:
		writeJSON(w, http.StatusUnprocessableEntity, articleResponse{
			Warning: warningFor(outcome.Missing),
			Field:   string(outcome.Missing),
		})

	case entity.OutcomeFailed:
		writeJSON(w, http.StatusBadGateway, articleResponse{Error: errorPrefix + outcome.Detail})

	case entity.OutcomeSucceeded:
		saved, err := h.artifacts.Save(r.Context(), outcome.Article)
		if err != nil {
			h.logger.Error("Failed to store artifact", "error", err)
			writeJSON(w, http.StatusInternalServerError, articleResponse{Error: errorPrefix + err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, articleResponse{
			Article:     outcome.Article.Text,
			FileName:    saved.FileName,
			DownloadURL: downloadURL(saved.ID),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
