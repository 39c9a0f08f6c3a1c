package domain

import "time"

// Domain contains the core entities shared by the ingestion pipeline and
// the query API.

// Article is the persisted news entity. ID and timestamps are assigned by
// the storage layer on write.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleDraft is a normalized article before it is written: no identifier
// and no timestamps yet. Content is always set, possibly to the empty
// string, and Author is either a real name or UnknownAuthor.
type ArticleDraft struct {
	Title   string
	Content string
	Author  string
}

// UnknownAuthor is stored when the external source names no author.
const UnknownAuthor = "unknown"

// User is an administrative account allowed to mutate articles.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
