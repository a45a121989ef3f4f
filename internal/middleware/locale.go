package middleware

import (
	"go-echo-newsroom/internal/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

const (
	LocaleKey     contextKey = "locale"
	TranslatorKey contextKey = "translator"
)

// Locale picks the response locale. An explicit ?locale= wins over
// Accept-Language; anything unsupported ends up as the translator default.
func Locale(translator *i18n.Translator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var tag language.Tag
			if q := c.QueryParam("locale"); q != "" {
				tag = translator.Match(q)
			} else {
				tag = translator.Match(c.Request().Header.Get("Accept-Language"))
			}

			c.Set(string(LocaleKey), tag)
			c.Set(string(TranslatorKey), translator)
			c.Response().Header().Set("Content-Language", tag.String())
			return next(c)
		}
	}
}

// GetLocale returns language.Und when the Locale middleware did not run.
func GetLocale(c echo.Context) language.Tag {
	tag, ok := c.Get(string(LocaleKey)).(language.Tag)
	if !ok {
		return language.Und
	}
	return tag
}

// Message translates key into the request locale.
func Message(c echo.Context, key string) string {
	translator, ok := c.Get(string(TranslatorKey)).(*i18n.Translator)
	if !ok {
		return key
	}
	return translator.Translate(GetLocale(c), key)
}
