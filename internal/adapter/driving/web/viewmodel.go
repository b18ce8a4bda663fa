package web

import (
	"html/template"

	"github.com/calebdraper/inkwell/internal/domain/model"
)

// articleListItem is one row in the article list view.
type articleListItem struct {
	ID        int64
	Title     string
	CreatedAt string
}

// articleListView is the data for the article list page.
type articleListView struct {
	Articles []articleListItem
}

// articleView is the data for the single-article page. ContentHTML is
// sanitized Markdown output, safe to emit unescaped.
type articleView struct {
	ID          int64
	Title       string
	ContentHTML template.HTML
	CreatedAt   string
	UpdatedAt   string
}

// loginView is the data for the login page.
type loginView struct {
	Failed bool
}

// signupView is the data for the signup page.
type signupView struct {
	Error string
}

// errorView is the data for the shared error page.
type errorView struct {
	Status  int
	Text    string
	Message string
}

func toArticleListView(articles []model.Article) articleListView {
	items := make([]articleListItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, articleListItem{
			ID:        a.ID,
			Title:     a.Title,
			CreatedAt: a.CreatedAt.Format(dateFormat),
		})
	}
	return articleListView{Articles: items}
}

func toArticleView(a model.Article) articleView {
	return articleView{
		ID:          a.ID,
		Title:       a.Title,
		ContentHTML: template.HTML(RenderMarkdown(a.Content)),
		CreatedAt:   a.CreatedAt.Format(dateFormat),
		UpdatedAt:   a.UpdatedAt.Format(dateFormat),
	}
}

const dateFormat = "January 2, 2006"
