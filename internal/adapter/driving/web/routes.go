package web

import (
	"net/http"
)

// RegisterRoutes registers the HTML page and form routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(h.static)))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /signup", h.SignupPage)
	mux.HandleFunc("POST /user", h.Signup)

	mux.HandleFunc("GET /articles", h.Articles)
	mux.HandleFunc("GET /articles/{id}", h.Article)

	// The bare root is just a shortcut to the article list.
	mux.Handle("GET /{$}", http.RedirectHandler("/articles", http.StatusSeeOther))
}
