package services

import (
	"errors"
	"strings"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrInvalidPublisher = errors.New("publishing requires an acting user")
	ErrUserNotFound     = errors.New("user not found")
)

// ValidationError lists every problem with a rejected input, one readable
// message per field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}
