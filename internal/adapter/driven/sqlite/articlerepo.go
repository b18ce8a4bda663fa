package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ArticleStore = (*ArticleRepo)(nil)

// ArticleRepo is the SQLite implementation of the ArticleStore port interface.
// The articles table uses AUTOINCREMENT, so ids are monotonic and never
// reused after a delete.
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates a new ArticleRepo backed by the given DB.
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Save inserts a new article and returns it with the assigned id.
func (r *ArticleRepo) Save(ctx context.Context, article model.Article) (model.Article, error) {
	const query = `INSERT INTO articles (title, content, created_at, updated_at) VALUES (?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := r.db.Writer.ExecContext(ctx, query, article.Title, article.Content, now, now)
	if err != nil {
		return model.Article{}, fmt.Errorf("save article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Article{}, fmt.Errorf("read inserted article id: %w", err)
	}

	article.ID = id
	article.CreatedAt = now
	article.UpdatedAt = now
	return article, nil
}

// ListAll returns every article ordered by id, which is insertion order.
func (r *ArticleRepo) ListAll(ctx context.Context) ([]model.Article, error) {
	const query = `SELECT id, title, content, created_at, updated_at FROM articles ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

// GetByID retrieves an article by id. Returns driven.ErrArticleNotFound if
// no article has that id.
func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (model.Article, error) {
	const query = `SELECT id, title, content, created_at, updated_at FROM articles WHERE id = ?`

	article, err := scanArticle(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, fmt.Errorf("get article %d: %w", id, driven.ErrArticleNotFound)
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("get article %d: %w", id, err)
	}

	return article, nil
}

// Update replaces title and content in a single UPDATE statement, so a
// concurrent reader sees either the old or the new row, never a mix. The
// RETURNING clause hands back the updated row from the same statement, so no
// follow-up read is needed and no row means driven.ErrArticleNotFound.
func (r *ArticleRepo) Update(ctx context.Context, id int64, title, content string) (model.Article, error) {
	const query = `UPDATE articles SET title = ?, content = ?, updated_at = ? WHERE id = ?
		RETURNING id, title, content, created_at, updated_at`

	article, err := scanArticle(r.db.Writer.QueryRowContext(ctx, query, title, content, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, fmt.Errorf("update article %d: %w", id, driven.ErrArticleNotFound)
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("update article %d: %w", id, err)
	}

	return article, nil
}

// Delete removes an article by id. Deleting a missing id is a no-op.
func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	return nil
}

func scanArticle(s scanner) (model.Article, error) {
	var article model.Article
	var createdAt, updatedAt string

	if err := s.Scan(&article.ID, &article.Title, &article.Content, &createdAt, &updatedAt); err != nil {
		return model.Article{}, err
	}

	var err error
	article.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("parse created_at: %w", err)
	}
	article.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return article, nil
}
