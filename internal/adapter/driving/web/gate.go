package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/calebdraper/inkwell/internal/application"
	"github.com/calebdraper/inkwell/internal/domain/model"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session_token"

// loginPath is where unauthenticated requests are sent.
const loginPath = "/login"

// SessionValidator resolves a session token to a live session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (model.Session, error)
}

var _ SessionValidator = (*application.AuthService)(nil)

// Rule is one entry in the gate's access policy. Path is matched exactly
// unless Prefix is set, in which case it matches any request path with that
// prefix.
type Rule struct {
	Path   string
	Prefix bool
	Public bool
}

// DefaultRules is the access policy for the application: the login and
// signup pages, the signup submission endpoint, and static assets are
// public; the fallthrough is protected.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/login", Public: true},
		{Path: "/signup", Public: true},
		{Path: "/user", Public: true},
		{Path: "/static/", Prefix: true, Public: true},
	}
}

// Gate classifies every inbound request as public or protected before any
// handler runs. Rules are evaluated top to bottom and the first match wins;
// a request matching no rule is protected. Protected requests proceed only
// with a valid session cookie, otherwise they are redirected to the login
// page and never reach a handler.
type Gate struct {
	rules    []Rule
	sessions SessionValidator
}

// NewGate creates a Gate enforcing the given rules.
func NewGate(rules []Rule, sessions SessionValidator) *Gate {
	return &Gate{rules: rules, sessions: sessions}
}

// Middleware wraps next with the gate check. Validated requests carry the
// session's user id on their context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		session, err := g.sessions.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), session.UserID)))
	})
}

func (g *Gate) isPublic(path string) bool {
	for _, rule := range g.rules {
		if rule.Prefix {
			if strings.HasPrefix(path, rule.Path) {
				return rule.Public
			}
			continue
		}
		if path == rule.Path {
			return rule.Public
		}
	}
	return false
}

type ctxKey int

const ctxKeyUserID ctxKey = iota

func withUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// UserID returns the authenticated user's id from the request context, if
// the request passed the gate with a valid session.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}
