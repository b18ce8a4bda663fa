// Package httphandler is the HTTP driving adapter serving the JSON article API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/calebdraper/inkwell/internal/application"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Handler serves the REST API under /api.
type Handler struct {
	articleSvc *application.ArticleService
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(articleSvc *application.ArticleService, logger *slog.Logger) *Handler {
	return &Handler{
		articleSvc: articleSvc,
		logger:     logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/articles", h.CreateArticle)
	mux.HandleFunc("GET /api/articles", h.ListArticles)
	mux.HandleFunc("GET /api/articles/{id}", h.GetArticle)
	mux.HandleFunc("PUT /api/articles/{id}", h.UpdateArticle)
	mux.HandleFunc("DELETE /api/articles/{id}", h.DeleteArticle)
}

// CreateArticle persists a new article and returns it with a 201 status.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articleSvc.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.writeServiceError(w, err, "failed to create article")
		return
	}

	writeJSON(w, http.StatusCreated, toArticleResponse(article))
}

// ListArticles returns every stored article.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleSvc.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list articles", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		resp = append(resp, toArticleResponse(article))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetArticle returns a single article by id.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	article, err := h.articleSvc.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get article")
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

// UpdateArticle replaces both fields of an existing article.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articleSvc.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		h.writeServiceError(w, err, "failed to update article")
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

// DeleteArticle removes an article. Deleting a missing id succeeds, so the
// endpoint is idempotent.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.articleSvc.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service errors onto client-facing responses:
// validation failures become 400, missing articles 404, and anything else an
// opaque 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Info("request rejected", "reason", verr.Error())
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, driven.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, "article not found")
	default:
		h.logger.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment, writing a 400 on malformed input.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return 0, false
	}
	return id, true
}
