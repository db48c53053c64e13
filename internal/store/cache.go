package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	_ "modernc.org/sqlite"
)

// Cache is a local record of listings the client has seen, so `recent`
// works offline and detail pages can show a browsing history. It is a
// write-behind record only: list views never serve from it implicitly.
type Cache struct {
	Dir string
}

func (c Cache) path() string {
	return filepath.Join(c.Dir, "listings.sqlite")
}

func (c Cache) open(ctx context.Context) (*sql.DB, error) {
	if c.Dir == "" {
		return nil, errors.New("cache dir is empty")
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", c.path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database
	// is locked" flakiness when CLI and TUI run at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := c.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (c Cache) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id        INTEGER PRIMARY KEY,
			title     TEXT NOT NULL,
			brand     TEXT NOT NULL DEFAULT '',
			payload   BLOB NOT NULL,
			seen_at   TEXT NOT NULL,
			viewed_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_listings_viewed_at ON listings(viewed_at);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Remember upserts listings as they pass through the client. The stored
// payload is the full wire object, so schema additions survive without a
// cache migration.
func (c Cache) Remember(ctx context.Context, listings ...model.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range listings {
		payload, err := json.Marshal(l)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO listings (id, title, brand, payload, seen_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   title = excluded.title,
			   brand = excluded.brand,
			   payload = excluded.payload,
			   seen_at = excluded.seen_at;`,
			l.ID, l.Title, l.Brand, payload, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MarkViewed records that the user opened a listing's detail page.
func (c Cache) MarkViewed(ctx context.Context, id int64) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx, `UPDATE listings SET viewed_at = ? WHERE id = ?;`, now, id)
	return err
}

// RecentlyViewed returns listings the user opened, most recent first.
func (c Cache) RecentlyViewed(ctx context.Context, limit int) ([]model.Listing, error) {
	if limit < 1 {
		limit = 20
	}
	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT payload FROM listings
		 WHERE viewed_at IS NOT NULL
		 ORDER BY viewed_at DESC
		 LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Listing
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var l model.Listing
		if err := json.Unmarshal(payload, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
