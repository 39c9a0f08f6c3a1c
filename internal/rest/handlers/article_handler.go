package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/internal/storage"
)

// ArticleService is the slice of the article service the handler needs.
type ArticleService interface {
	List(ctx context.Context, req domain.PageRequest) (domain.ArticlePage, error)
	Get(ctx context.Context, id int64) (domain.Article, error)
	Create(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error)
	Update(ctx context.Context, id int64, draft domain.ArticleDraft) (domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleHandler serves the article read and write endpoints.
type ArticleHandler struct {
	service ArticleService
	log     logger.Logger
}

// NewArticleHandler creates an article handler.
func NewArticleHandler(service ArticleService, log logger.Logger) *ArticleHandler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ArticleHandler{service: service, log: log}
}

type listArticlesRequest struct {
	Page      int    `query:"page" validate:"required,min=1"`
	PageSize  int    `query:"pageSize" validate:"required,min=1,max=100"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=id title content author"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `query:"search"`
}

type articlePayload struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	Author  string `json:"author" validate:"required"`
}

// List returns a filtered, sorted page of articles with count metadata.
func (h *ArticleHandler) List(c echo.Context) error {
	var req listArticlesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed query parameters", Code: codeValidation})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
	}

	page, err := h.service.List(c.Request().Context(), domain.PageRequest{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    domain.SortField(req.SortBy),
		SortOrder: domain.SortOrder(req.SortOrder),
		Search:    req.Search,
	})
	if err != nil {
		h.log.ErrorObj("article listing failed", "article_list_error", map[string]any{
			"error": err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "listing failed", Code: codeInternal})
	}

	return c.JSON(http.StatusOK, toArticlePageResponse(page))
}

// Get returns a single article by id.
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid article id", Code: codeValidation})
	}

	article, err := h.service.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "article not found", Code: codeNotFound})
	}
	if err != nil {
		h.log.ErrorObj("article lookup failed", "article_get_error", map[string]any{
			"article_id": id,
			"error":      err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed", Code: codeInternal})
	}

	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Create persists a manually authored article.
func (h *ArticleHandler) Create(c echo.Context) error {
	var payload articlePayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Code: codeValidation})
	}
	if err := c.Validate(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
	}

	article, err := h.service.Create(c.Request().Context(), domain.ArticleDraft{
		Title:   payload.Title,
		Content: payload.Content,
		Author:  payload.Author,
	})
	if err != nil {
		h.log.ErrorObj("article create failed", "article_create_error", map[string]any{
			"error": err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "create failed", Code: codeInternal})
	}

	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update overwrites an existing article's fields.
func (h *ArticleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid article id", Code: codeValidation})
	}

	var payload articlePayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Code: codeValidation})
	}
	if err := c.Validate(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
	}

	article, err := h.service.Update(c.Request().Context(), id, domain.ArticleDraft{
		Title:   payload.Title,
		Content: payload.Content,
		Author:  payload.Author,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "article not found", Code: codeNotFound})
	}
	if err != nil {
		h.log.ErrorObj("article update failed", "article_update_error", map[string]any{
			"article_id": id,
			"error":      err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "update failed", Code: codeInternal})
	}

	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete removes an article by id.
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid article id", Code: codeValidation})
	}

	err = h.service.Delete(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "article not found", Code: codeNotFound})
	}
	if err != nil {
		h.log.ErrorObj("article delete failed", "article_delete_error", map[string]any{
			"article_id": id,
			"error":      err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "delete failed", Code: codeInternal})
	}

	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
