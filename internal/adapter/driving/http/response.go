package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/calebdraper/inkwell/internal/domain/model"
)

// ArticleRequest is the JSON body for the create and update endpoints.
type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ArticleResponse is the JSON representation of an article. Timestamps are
// RFC 3339 in UTC.
type ArticleResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toArticleResponse(article model.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		CreatedAt: article.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: article.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status. Every
// payload in this package is a plain struct or slice of structs, so encoding
// cannot fail after the header is out; an encoder error here means the
// client went away mid-write and there is nothing left to tell it.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
