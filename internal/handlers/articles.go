package handlers

import (
	"errors"
	"strconv"

	"go-echo-newsroom/internal/access"
	"go-echo-newsroom/internal/middleware"
	"go-echo-newsroom/internal/models"
	"go-echo-newsroom/internal/render"
	"go-echo-newsroom/internal/services"

	"github.com/labstack/echo/v4"
)

// ArticleHandler serves the reader-facing article lookup.
type ArticleHandler struct {
	articleService *services.ArticleService
	builder        *render.Builder
}

func NewArticleHandler(articleService *services.ArticleService, builder *render.Builder) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		builder:        builder,
	}
}

func (h *ArticleHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	class := access.Classify(middleware.GetPrincipal(c))

	var article *models.Article
	if id, err := strconv.ParseUint(c.Param("id"), 10, 0); err == nil {
		article, err = h.articleService.Get(ctx, uint(id))
		if err != nil && !errors.Is(err, services.ErrArticleNotFound) {
			return err
		}
	}

	payload := h.builder.Respond(article, class, middleware.GetLocale(c))

	outcome := "found"
	if !payload.Found() {
		outcome = "not_found"
	}
	middleware.RecordArticleLookup(ctx, class.String(), outcome)

	return c.JSON(payload.Status, payload)
}
