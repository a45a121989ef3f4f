// Package render shapes articles into the payloads the API returns.
package render

import (
	"net/http"

	"go-echo-newsroom/internal/access"
	"go-echo-newsroom/internal/i18n"
	"go-echo-newsroom/internal/models"

	"golang.org/x/text/language"
)

type ArticleBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Payload is the reader-facing result of a single article lookup. Exactly one
// of Article and Error is set.
type Payload struct {
	Status  int          `json:"-"`
	Article *ArticleBody `json:"article,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func (p Payload) Found() bool {
	return p.Article != nil
}

type Builder struct {
	translator *i18n.Translator
}

func NewBuilder(translator *i18n.Translator) *Builder {
	return &Builder{translator: translator}
}

// Respond renders article for a caller of the given class. Missing and
// unpublished articles produce the same localized not-found error.
func (b *Builder) Respond(article *models.Article, class access.CallerClass, tag language.Tag) Payload {
	if !access.IsVisible(article) {
		return Payload{
			Status: http.StatusNotFound,
			Error:  b.translator.Translate(tag, i18n.ArticleNotFound),
		}
	}

	return Payload{
		Status: http.StatusOK,
		Article: &ArticleBody{
			Title: article.Title,
			Body:  access.BodyFor(article, class),
		},
	}
}
