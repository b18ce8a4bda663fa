package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// ValidationError reports a missing or empty required field on input.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// ArticleService is the business facade over article persistence. It owns
// input validation; everything else is delegated to the store, which is the
// sole mutation authority. No article state is cached across requests.
type ArticleService struct {
	articles driven.ArticleStore
	logger   *slog.Logger
}

// NewArticleService creates an ArticleService backed by the given store.
func NewArticleService(articles driven.ArticleStore, logger *slog.Logger) *ArticleService {
	return &ArticleService{articles: articles, logger: logger}
}

// Create validates and persists a new article, returning it with the
// store-assigned id.
func (s *ArticleService) Create(ctx context.Context, title, content string) (model.Article, error) {
	if err := validateArticleFields(title, content); err != nil {
		return model.Article{}, err
	}

	article, err := s.articles.Save(ctx, model.Article{Title: title, Content: content})
	if err != nil {
		return model.Article{}, fmt.Errorf("create article: %w", err)
	}

	s.logger.Info("article created", "id", article.ID, "title", article.Title)
	return article, nil
}

// ListAll returns a snapshot of every stored article in insertion order.
func (s *ArticleService) ListAll(ctx context.Context) ([]model.Article, error) {
	articles, err := s.articles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// GetByID returns the article with the given id, or driven.ErrArticleNotFound.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (model.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// Update replaces both fields of the article in place. The store applies the
// replacement as a single statement, so a concurrent reader sees either the
// fully-old or the fully-new record.
func (s *ArticleService) Update(ctx context.Context, id int64, title, content string) (model.Article, error) {
	if err := validateArticleFields(title, content); err != nil {
		return model.Article{}, err
	}

	article, err := s.articles.Update(ctx, id, title, content)
	if err != nil {
		return model.Article{}, err
	}

	s.logger.Info("article updated", "id", id)
	return article, nil
}

// Delete removes the article with the given id. Deleting a missing id is a
// no-op success; the operation is idempotent.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	s.logger.Info("article deleted", "id", id)
	return nil
}

func validateArticleFields(title, content string) error {
	if title == "" {
		return &ValidationError{Field: "title"}
	}
	if content == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
