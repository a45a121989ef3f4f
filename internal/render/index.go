package render

import (
	"go-echo-newsroom/internal/models"
)

// IndexItem is one row of the admin listing. Fields left empty are omitted for
// roles that may not see them.
type IndexItem struct {
	ID         uint                 `json:"id"`
	Title      string               `json:"title"`
	Body       string               `json:"body,omitempty"`
	Journalist *models.UserResponse `json:"journalist,omitempty"`
}

func IndexItemFor(article *models.Article, role models.Role) IndexItem {
	item := IndexItem{
		ID:    article.ID,
		Title: article.Title,
	}

	if role == models.RoleEditor {
		item.Body = article.Body
		if article.Journalist.ID != 0 {
			journalist := article.Journalist.ToResponse()
			item.Journalist = &journalist
		}
	}

	return item
}

func Index(articles []models.Article, role models.Role) []IndexItem {
	items := make([]IndexItem, len(articles))
	for i := range articles {
		items[i] = IndexItemFor(&articles[i], role)
	}
	return items
}
