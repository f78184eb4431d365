package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // Required by the library implementation.

	"wikicli/internal/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteCache persists fetched article bodies in a local sqlite file so
// repeated lookups skip the network.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	log *slog.Logger
}

var _ ports.PageCache = (*SQLiteCache)(nil)

// Open creates the cache file (and its directory) if needed and applies
// pending schema migrations.
func Open(path string, ttl time.Duration, log *slog.Logger) (*SQLiteCache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteCache{db: db, ttl: ttl, log: log}, nil
}

func applyMigrations(db *sql.DB) error {
	dbInstance, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create db instance: %w", err)
	}

	srcInstance, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create source instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcInstance, "sqlite3", dbInstance)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Get returns the cached body for (lang, kind, topic) if present and not
// older than the TTL.
func (c *SQLiteCache) Get(ctx context.Context, lang, kind, topic string) (ports.CachedArticle, bool, error) {
	if c == nil || c.db == nil {
		return ports.CachedArticle{}, false, nil
	}

	row := sq.Select("resolved_title", "body", "fetched_at").
		From("articles").
		Where(sq.Eq{"lang": lang, "kind": kind, "title": topic}).
		RunWith(c.db).
		QueryRowContext(ctx)

	var (
		article   ports.CachedArticle
		fetchedAt int64
	)
	if err := row.Scan(&article.Title, &article.Body, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CachedArticle{}, false, nil
		}
		return ports.CachedArticle{}, false, fmt.Errorf("query cache: %w", err)
	}

	if c.ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		if c.log != nil {
			c.log.Debug("cache entry expired", "kind", kind, "title", topic)
		}
		return ports.CachedArticle{}, false, nil
	}

	return article, true, nil
}

// Put upserts the body for (lang, kind, topic).
func (c *SQLiteCache) Put(ctx context.Context, lang, kind, topic string, article ports.CachedArticle) error {
	if c == nil || c.db == nil {
		return nil
	}

	_, err := sq.Insert("articles").
		Columns("lang", "kind", "title", "resolved_title", "body", "fetched_at").
		Values(lang, kind, topic, article.Title, article.Body, time.Now().Unix()).
		Suffix(`ON CONFLICT(lang, kind, title) DO UPDATE SET
			resolved_title = excluded.resolved_title,
			body = excluded.body,
			fetched_at = excluded.fetched_at`).
		RunWith(c.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert cache: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (c *SQLiteCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
