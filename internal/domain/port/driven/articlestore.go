package driven

import (
	"context"
	"errors"

	"github.com/calebdraper/inkwell/internal/domain/model"
)

// ErrArticleNotFound indicates the requested article does not exist.
var ErrArticleNotFound = errors.New("article not found")

// ArticleStore defines the driven port for article persistence.
// Save assigns the article's ID on insert; IDs are monotonic and never
// reused after deletion. GetByID and Update return ErrArticleNotFound when
// no article has the given id. Delete is a no-op for a missing id.
type ArticleStore interface {
	Save(ctx context.Context, article model.Article) (model.Article, error)
	ListAll(ctx context.Context) ([]model.Article, error)
	GetByID(ctx context.Context, id int64) (model.Article, error)
	Update(ctx context.Context, id int64, title, content string) (model.Article, error)
	Delete(ctx context.Context, id int64) error
}
