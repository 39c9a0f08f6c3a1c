package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/storage"
)

// ArticleRepository implements storage.ArticleStore on PostgreSQL.
type ArticleRepository struct {
	db *sqlx.DB
}

type dbArticle struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (a dbArticle) toDomain() domain.Article {
	return domain.Article{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NewArticleRepository returns an article repository over the given pool.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Insert persists the draft as a new row, stamping both timestamps with
// the current UTC time.
func (r *ArticleRepository) Insert(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error) {
	now := time.Now().UTC()

	var row dbArticle
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO articles (title, content, author, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id, title, content, author, created_at, updated_at`,
		draft.Title, draft.Content, draft.Author, now,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("insert article: %w", err)
	}

	return row.toDomain(), nil
}

// ByID returns a single article or storage.ErrNotFound.
func (r *ArticleRepository) ByID(ctx context.Context, id int64) (domain.Article, error) {
	var row dbArticle
	err := r.db.GetContext(ctx, &row,
		`SELECT id, title, content, author, created_at, updated_at
		 FROM articles WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("select article %d: %w", id, err)
	}

	return row.toDomain(), nil
}

// List returns one page of articles matching the request.
func (r *ArticleRepository) List(ctx context.Context, req domain.PageRequest) ([]domain.Article, error) {
	query, args, err := buildListQuery(req)
	if err != nil {
		return nil, err
	}

	var rows []dbArticle
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return lo.Map(rows, func(row dbArticle, _ int) domain.Article {
		return row.toDomain()
	}), nil
}

// Count returns how many articles match the search filter.
func (r *ArticleRepository) Count(ctx context.Context, search string) (int64, error) {
	query, args := buildCountQuery(search)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable fields and refreshes updated_at while
// preserving created_at.
func (r *ArticleRepository) Update(ctx context.Context, id int64, draft domain.ArticleDraft) (domain.Article, error) {
	var row dbArticle
	err := r.db.GetContext(ctx, &row,
		`UPDATE articles
		 SET title = $1, content = $2, author = $3, updated_at = $4
		 WHERE id = $5
		 RETURNING id, title, content, author, created_at, updated_at`,
		draft.Title, draft.Content, draft.Author, time.Now().UTC(), id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("update article %d: %w", id, err)
	}

	return row.toDomain(), nil
}

// Delete removes the article with the given id.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
