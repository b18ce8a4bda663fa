package driven

import (
	"context"
	"errors"
	"time"

	"github.com/calebdraper/inkwell/internal/domain/model"
)

// ErrSessionNotFound indicates the session token is unknown to the store.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the driven port for session persistence.
// Get returns ErrSessionNotFound for unknown tokens; expiry is the caller's
// concern. Delete is idempotent.
type SessionStore interface {
	Create(ctx context.Context, session model.Session) error
	Get(ctx context.Context, token string) (model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
