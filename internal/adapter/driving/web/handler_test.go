package web_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/calebdraper/inkwell/internal/adapter/driving/web"
	"github.com/calebdraper/inkwell/internal/application"
	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock stores ---

type mockArticleStore struct {
	articles map[int64]model.Article
	nextID   int64
}

func newMockArticleStore() *mockArticleStore {
	return &mockArticleStore{articles: make(map[int64]model.Article), nextID: 1}
}

func (m *mockArticleStore) Save(_ context.Context, article model.Article) (model.Article, error) {
	article.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now
	m.articles[article.ID] = article
	return article, nil
}

func (m *mockArticleStore) ListAll(_ context.Context) ([]model.Article, error) {
	out := make([]model.Article, 0, len(m.articles))
	for id := int64(1); id < m.nextID; id++ {
		if a, ok := m.articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleStore) GetByID(_ context.Context, id int64) (model.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return model.Article{}, driven.ErrArticleNotFound
	}
	return a, nil
}

func (m *mockArticleStore) Update(_ context.Context, id int64, title, content string) (model.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return model.Article{}, driven.ErrArticleNotFound
	}
	a.Title = title
	a.Content = content
	m.articles[id] = a
	return a, nil
}

func (m *mockArticleStore) Delete(_ context.Context, id int64) error {
	delete(m.articles, id)
	return nil
}

type mockUserStore struct {
	users  map[string]model.User
	nextID int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]model.User), nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	if _, ok := m.users[user.Email]; ok {
		return model.User{}, driven.ErrUserAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return user, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return model.User{}, driven.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, driven.ErrUserNotFound
}

type mockSessionStore struct {
	sessions map[string]model.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]model.Session)}
}

func (m *mockSessionStore) Create(_ context.Context, session model.Session) error {
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, token string) (model.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return model.Session{}, driven.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context, now time.Time) error {
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
		}
	}
	return nil
}

// --- Test fixture ---

type fixture struct {
	mux      *http.ServeMux
	articles *mockArticleStore
	authSvc  *application.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	articles := newMockArticleStore()
	articleSvc := application.NewArticleService(articles, slog.Default())
	authSvc := application.NewAuthService(newMockUserStore(), newMockSessionStore(), time.Hour, bcrypt.MinCost, slog.Default())

	h, err := web.NewHandler(articleSvc, authSvc, time.Hour, slog.Default())
	require.NoError(t, err)

	mux := http.NewServeMux()
	web.RegisterRoutes(mux, h)
	return &fixture{mux: mux, articles: articles, authSvc: authSvc}
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func credentials(email, password string) url.Values {
	return url.Values{"username": {email}, "password": {password}}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == web.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

// --- Tests ---

func TestLoginPage(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/login")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
	assert.NotContains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginPageShowsGenericFailure(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/login?error=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	f := newFixture(t)
	_, err := f.authSvc.SignUp(context.Background(), "reader@example.com", "hunter2")
	require.NoError(t, err)

	rec := f.postForm("/login", credentials("reader@example.com", "hunter2"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/articles", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	session, err := f.authSvc.ValidateSession(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.NotZero(t, session.UserID)
}

func TestLoginWrongPasswordRedirectsWithError(t *testing.T) {
	f := newFixture(t)
	_, err := f.authSvc.SignUp(context.Background(), "reader@example.com", "hunter2")
	require.NoError(t, err)

	rec := f.postForm("/login", credentials("reader@example.com", "wrong"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=1", rec.Header().Get("Location"))
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginUnknownEmailBehavesLikeWrongPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm("/login", credentials("nobody@example.com", "whatever"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=1", rec.Header().Get("Location"))
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.authSvc.SignUp(context.Background(), "reader@example.com", "hunter2")
	require.NoError(t, err)
	loginRec := f.postForm("/login", credentials("reader@example.com", "hunter2"))
	cookie := sessionCookie(t, loginRec)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	_, err = f.authSvc.ValidateSession(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestSignupCreatesAccount(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm("/user", credentials("new@example.com", "secret"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	loginRec := f.postForm("/login", credentials("new@example.com", "secret"))
	assert.Equal(t, "/articles", loginRec.Header().Get("Location"))
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.postForm("/user", credentials("new@example.com", "secret"))

	rec := f.postForm("/user", credentials("new@example.com", "other"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestSignupEmptyPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm("/user", credentials("new@example.com", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password")
}

func TestArticlesPage(t *testing.T) {
	f := newFixture(t)
	_, err := f.articles.Save(context.Background(), model.Article{Title: "First Post", Content: "hello"})
	require.NoError(t, err)

	rec := f.get("/articles")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First Post")
	assert.Contains(t, rec.Body.String(), `href="/articles/1"`)
}

func TestArticlesPageEmpty(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/articles")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No articles yet")
}

func TestArticlePageRendersMarkdown(t *testing.T) {
	f := newFixture(t)
	_, err := f.articles.Save(context.Background(), model.Article{
		Title:   "Formatting",
		Content: "some **bold** text",
	})
	require.NoError(t, err)

	rec := f.get("/articles/1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>bold</strong>")
}

func TestArticlePageNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/articles/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestRootRedirectsToArticles(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/articles", rec.Header().Get("Location"))
}

func TestStaticAssetServed(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/static/style.css")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestStaticUnknownAssetIs404(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/static/nope.js")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
