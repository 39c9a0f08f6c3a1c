package handlers

import (
	"time"

	"github.com/padmin-io/newsboard/internal/domain"
)

// ErrorResponse is the JSON shape of every error the API returns.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

const (
	codeValidation   = "VALIDATION_ERROR"
	codeNotFound     = "NOT_FOUND"
	codeUnauthorized = "UNAUTHORIZED"
	codeInternal     = "INTERNAL_ERROR"
)

// ArticleResponse is the JSON shape of a stored article.
type ArticleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArticlePageResponse is one page of articles plus count metadata.
type ArticlePageResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

func toArticleResponse(a domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArticlePageResponse(page domain.ArticlePage) ArticlePageResponse {
	articles := make([]ArticleResponse, len(page.Articles))
	for i, a := range page.Articles {
		articles[i] = toArticleResponse(a)
	}
	return ArticlePageResponse{
		Articles:   articles,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
