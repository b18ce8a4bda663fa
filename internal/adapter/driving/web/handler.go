// Package web implements the HTML driving adapter: login, signup, and the
// server-rendered article pages.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/calebdraper/inkwell/internal/application"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Handler serves the HTML pages and the form endpoints.
type Handler struct {
	articleSvc *application.ArticleService
	authSvc    *application.AuthService
	sessionTTL time.Duration
	pages      map[string]*template.Template
	static     fs.FS
	logger     *slog.Logger
}

// NewHandler creates a Handler, parsing the embedded page templates and
// locating the embedded static assets. Either failing is a build defect and
// surfaces here, at startup.
func NewHandler(
	articleSvc *application.ArticleService,
	authSvc *application.AuthService,
	sessionTTL time.Duration,
	logger *slog.Logger,
) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assetsFS, "static")
	if err != nil {
		return nil, fmt.Errorf("locate static assets: %w", err)
	}
	return &Handler{
		articleSvc: articleSvc,
		authSvc:    authSvc,
		sessionTTL: sessionTTL,
		pages:      pages,
		static:     static,
		logger:     logger,
	}, nil
}

// LoginPage renders the login form. A failed login redirects back here with
// ?error=1 and the page shows a deliberately generic failure banner.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", loginView{
		Failed: r.URL.Query().Get("error") != "",
	})
}

// Login handles the login form submission. The form field is named
// "username" but carries the account email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "malformed form submission")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	session, err := h.authSvc.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			return
		}
		h.logger.Error("login failed", "error", err)
		h.renderError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}

	http.SetCookie(w, h.sessionCookie(session.Token, h.sessionTTL))
	http.Redirect(w, r, "/articles", http.StatusSeeOther)
}

// Logout invalidates the current session and clears the cookie. Requests
// without a session cookie still land on the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authSvc.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("logout failed", "error", err)
		}
		http.SetCookie(w, h.sessionCookie("", -time.Hour))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SignupPage renders the registration form.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signup.html", signupView{})
}

// Signup handles the registration form submission.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "malformed form submission")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, err := h.authSvc.SignUp(r.Context(), email, password)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			h.render(w, http.StatusBadRequest, "signup.html", signupView{Error: verr.Error()})
		case errors.Is(err, driven.ErrUserAlreadyExists):
			h.render(w, http.StatusConflict, "signup.html", signupView{Error: "that email is already registered"})
		default:
			h.logger.Error("signup failed", "error", err)
			h.renderError(w, http.StatusInternalServerError, "something went wrong, try again")
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Articles renders the article list.
func (h *Handler) Articles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleSvc.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list articles", "error", err)
		h.renderError(w, http.StatusInternalServerError, "could not load articles")
		return
	}

	h.render(w, http.StatusOK, "articles.html", toArticleListView(articles))
}

// Article renders a single article with its content converted from Markdown.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderError(w, http.StatusNotFound, "no such article")
		return
	}

	article, err := h.articleSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, driven.ErrArticleNotFound) {
			h.renderError(w, http.StatusNotFound, fmt.Sprintf("no article with id %d", id))
			return
		}
		h.logger.Error("failed to get article", "id", id, "error", err)
		h.renderError(w, http.StatusInternalServerError, "could not load article")
		return
	}

	h.render(w, http.StatusOK, "article.html", toArticleView(article))
}

// sessionCookie builds the session cookie. A non-positive maxAge expires it.
func (h *Handler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
