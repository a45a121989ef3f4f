// Package i18n holds the translated messages of the API and picks the locale a
// request is answered in.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	ArticleNotFound = "article.not_found"
	Unauthorized    = "auth.unauthorized"
	Forbidden       = "auth.forbidden"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		ArticleNotFound: "Article not found",
		Unauthorized:    "You need to sign in before continuing",
		Forbidden:       "You are not authorized to perform this action",
	},
	language.Swedish: {
		ArticleNotFound: "Artikeln hittades inte",
		Unauthorized:    "Du måste logga in för att fortsätta",
		Forbidden:       "Du har inte behörighet att utföra denna åtgärd",
	},
}

type Translator struct {
	catalog   *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
}

// bundled lists the locales in messages.
var bundled = []language.Tag{language.English, language.Swedish}

// New builds a Translator answering in fallback when nothing else matches.
// fallback is narrowed to the closest bundled locale, so en-US selects en.
func New(fallback language.Tag) (*Translator, error) {
	_, index, confidence := language.NewMatcher(bundled).Match(fallback)
	if confidence == language.No {
		return nil, fmt.Errorf("no messages for locale %s", fallback)
	}
	fallback = bundled[index]

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	supported := []language.Tag{fallback}
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to set %s/%s: %w", tag, key, err)
			}
		}
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	return &Translator{
		catalog:   b,
		matcher:   language.NewMatcher(supported),
		supported: supported,
	}, nil
}

func (t *Translator) Default() language.Tag {
	return t.supported[0]
}

// Match resolves locale strings (plain tags or Accept-Language values) to a
// supported locale, falling back to the default.
func (t *Translator) Match(raw ...string) language.Tag {
	var desired []language.Tag
	for _, r := range raw {
		tags, _, err := language.ParseAcceptLanguage(r)
		if err != nil {
			continue
		}
		desired = append(desired, tags...)
	}
	if len(desired) == 0 {
		return t.Default()
	}

	return t.resolve(desired...)
}

// Translate renders key in tag. Tags outside the bundled locales are answered
// in the default one.
func (t *Translator) Translate(tag language.Tag, key string) string {
	return message.NewPrinter(t.resolve(tag), message.Catalog(t.catalog)).Sprintf(key)
}

func (t *Translator) resolve(desired ...language.Tag) language.Tag {
	_, index, confidence := t.matcher.Match(desired...)
	if confidence == language.No {
		return t.Default()
	}
	return t.supported[index]
}
