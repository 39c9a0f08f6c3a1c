// Package articles exposes the read and write operations over stored
// articles: paginated searchable listings, single lookups and the
// authenticated mutations.
package articles

import (
	"context"
	"fmt"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/internal/storage"
)

// Service translates caller requests into storage reads and writes.
type Service struct {
	store storage.ArticleStore
	log   logger.Logger
}

// NewService builds an article service over the given store.
func NewService(store storage.ArticleStore, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{store: store, log: log}
}

// List returns one page of articles matching the request plus the total
// count over the same filter. A page beyond the last one yields an empty
// page with the true total, not an error. The request is expected to be
// validated at the boundary; only sort defaults are applied here.
func (s *Service) List(ctx context.Context, req domain.PageRequest) (domain.ArticlePage, error) {
	req = req.Normalized()

	rows, err := s.store.List(ctx, req)
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("list articles: %w", err)
	}

	total, err := s.store.Count(ctx, req.Search)
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("count articles: %w", err)
	}

	return domain.ArticlePage{
		Articles:   rows,
		TotalCount: total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

// Get returns a single article by id, or storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (domain.Article, error) {
	return s.store.ByID(ctx, id)
}

// Create persists a manually authored article.
func (s *Service) Create(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error) {
	article, err := s.store.Insert(ctx, draft)
	if err != nil {
		return domain.Article{}, fmt.Errorf("create article: %w", err)
	}

	s.log.InfoObj("article created", "article_create", map[string]any{
		"article_id": article.ID,
	})
	return article, nil
}

// Update overwrites the mutable fields of an existing article.
func (s *Service) Update(ctx context.Context, id int64, draft domain.ArticleDraft) (domain.Article, error) {
	article, err := s.store.Update(ctx, id, draft)
	if err != nil {
		return domain.Article{}, err
	}

	s.log.InfoObj("article updated", "article_update", map[string]any{
		"article_id": article.ID,
	})
	return article, nil
}

// Delete removes an article by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoObj("article deleted", "article_delete", map[string]any{
		"article_id": id,
	})
	return nil
}
