package driven

import (
	"context"
	"errors"

	"github.com/calebdraper/inkwell/internal/domain/model"
)

// Sentinel errors returned by UserStore implementations.
var (
	// ErrUserNotFound indicates no account exists for the given email or id.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates an account with the same email already exists.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserStore defines the driven port for account persistence.
// Create returns ErrUserAlreadyExists on a duplicate email. The lookup
// methods return ErrUserNotFound when no account matches.
type UserStore interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
}
