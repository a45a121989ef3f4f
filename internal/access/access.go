// Package access decides what a reader may see of an article.
package access

import (
	"go-echo-newsroom/internal/models"
)

// PreviewLength is how many characters of the body a non-subscriber gets.
const PreviewLength = 350

type CallerClass int

const (
	Anonymous CallerClass = iota
	Subscriber
	// NoCredential is an authenticated caller without a subscription. It shares
	// the Anonymous tier.
	NoCredential
)

func (c CallerClass) String() string {
	switch c {
	case Anonymous:
		return "anonymous"
	case Subscriber:
		return "subscriber"
	case NoCredential:
		return "no_credential"
	}
	return "unknown"
}

// Principal is the authenticated identity behind a request, as established by
// the token middleware.
type Principal struct {
	UserID uint
	Role   models.Role
}

func (p *Principal) HasRole(roles ...models.Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func Classify(p *Principal) CallerClass {
	switch {
	case p == nil:
		return Anonymous
	case p.Role == models.RoleSubscriber:
		return Subscriber
	default:
		return NoCredential
	}
}

func IsVisible(article *models.Article) bool {
	return article != nil && article.Published
}

func BodyFor(article *models.Article, class CallerClass) string {
	switch class {
	case Subscriber:
		return article.Body
	case Anonymous, NoCredential:
		return preview(article.Body)
	}
	return preview(article.Body)
}

func preview(body string) string {
	n := 0
	for i := range body {
		if n == PreviewLength {
			return body[:i]
		}
		n++
	}
	return body
}
