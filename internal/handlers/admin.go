package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-echo-newsroom/internal/logging"
	"go-echo-newsroom/internal/middleware"
	"go-echo-newsroom/internal/models"
	"go-echo-newsroom/internal/render"
	"go-echo-newsroom/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandler is the newsroom desk: creating, publishing and reviewing
// articles. Role checks happen in middleware before these run.
type AdminHandler struct {
	articleService *services.ArticleService
	userService    *services.UserService
}

func NewAdminHandler(articleService *services.ArticleService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		articleService: articleService,
		userService:    userService,
	}
}

type CreateArticleRequest struct {
	Article services.CreateArticleInput `json:"article"`
}

type UpdatePublicationRequest struct {
	Article struct {
		Published json.RawMessage `json:"published"`
	} `json:"article"`
}

// Publish reports whether the request asks for publication. Only a JSON true
// or the string "true" do.
func (r UpdatePublicationRequest) Publish() bool {
	raw := bytes.TrimSpace(r.Article.Published)
	return string(raw) == "true" || string(raw) == `"true"`
}

type ValidationErrorResponse struct {
	Error []string `json:"error"`
}

type IndexResponse struct {
	Articles []render.IndexItem `json:"articles"`
}

func (h *AdminHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	journalist, err := h.actor(c)
	if err != nil {
		return err
	}

	if _, err := h.articleService.Create(ctx, journalist, req.Article); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Error: verr.Messages})
		}
		return err
	}

	return c.NoContent(http.StatusOK)
}

// Update toggles publication. It answers 200 whatever happens to the
// mutation; failures only show up in the logs.
func (h *AdminHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdatePublicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		logging.Warn(ctx).Str("id", c.Param("id")).Msg("publication change for malformed article id")
		return c.NoContent(http.StatusOK)
	}

	editor, err := h.actor(c)
	if err != nil {
		return err
	}

	if _, err := h.articleService.SetPublication(ctx, uint(id), req.Publish(), editor); err != nil {
		logging.Error(ctx).
			Err(err).
			Uint64("article_id", id).
			Bool("published", req.Publish()).
			Msg("failed to change article publication")
	}

	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	articles, err := h.articleService.ListUnpublished(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, IndexResponse{Articles: render.Index(articles, principal.Role)})
}

// actor loads the user behind the request principal. A principal whose user
// no longer exists yields a nil user, which the service rejects.
func (h *AdminHandler) actor(c echo.Context) (*models.User, error) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.userService.GetByID(c.Request().Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
