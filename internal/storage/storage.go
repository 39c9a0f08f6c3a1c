// Package storage defines the persistence contracts used by the ingestion
// pipeline and the query API.
package storage

import (
	"context"
	"errors"

	"github.com/padmin-io/newsboard/internal/domain"
)

// ErrNotFound signals that no row matched the given identifier. It is
// distinct from operational failures so callers can tell an absent entity
// from a broken store.
var ErrNotFound = errors.New("not found")

// ArticleStore describes the operations the pipeline and API need over the
// articles table.
type ArticleStore interface {
	// Insert persists a draft, stamping timestamps, and returns the stored
	// article with its assigned id.
	Insert(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error)
	// ByID returns the article with the given id, or ErrNotFound.
	ByID(ctx context.Context, id int64) (domain.Article, error)
	// List returns one page of articles matching the request's search
	// filter, in the requested order.
	List(ctx context.Context, req domain.PageRequest) ([]domain.Article, error)
	// Count returns the number of articles matching the search filter,
	// ignoring pagination bounds. An empty search matches every row.
	Count(ctx context.Context, search string) (int64, error)
	// Update overwrites title, content and author of an existing article
	// and refreshes its updated_at timestamp. Returns ErrNotFound when the
	// id does not exist.
	Update(ctx context.Context, id int64, draft domain.ArticleDraft) (domain.Article, error)
	// Delete removes the article, or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// UserStore looks up administrative accounts.
type UserStore interface {
	// ByEmail returns the user with the given email, or ErrNotFound.
	ByEmail(ctx context.Context, email string) (domain.User, error)
	// Create inserts a new user and returns it with its assigned id.
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
}
