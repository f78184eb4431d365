package ports

import (
	"context"

	"wikicli/internal/domain"
)

// Cache kinds partition the article cache by operation.
const (
	CacheKindSummary = "summary"
	CacheKindContent = "content"
)

// KnowledgeClient talks to a remote encyclopedia service. Implementations
// signal "not found" with *domain.NotFoundError and ambiguity with
// *domain.DisambiguationError; any other error is a general failure.
type KnowledgeClient interface {
	// SetLanguage switches the client to the wiki for the given language
	// code. On error the previous language stays selected.
	SetLanguage(ctx context.Context, code string) error

	// Summary returns up to the requested number of sentences of plain text.
	Summary(ctx context.Context, topic string, sentences int) (string, error)

	// Page returns the full article body with its canonical title resolved.
	Page(ctx context.Context, topic string) (domain.Page, error)

	// Search returns up to limit article titles matching the query.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// CachedArticle is a body stored for a previously fetched topic. Title is
// the canonical title for full-content entries and the topic itself for
// summaries.
type CachedArticle struct {
	Title string
	Body  string
}

// PageCache stores fetched article bodies keyed by language, cache kind,
// and the topic as requested.
type PageCache interface {
	Get(ctx context.Context, lang, kind, topic string) (CachedArticle, bool, error)
	Put(ctx context.Context, lang, kind, topic string, article CachedArticle) error
	Close() error
}
