// Package bookmarks persists bookmarked stories in SQLite.
package bookmarks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/tesso57/gazette/internal/domain/bookmark"
)

// Store keeps bookmarks in a SQLite database. All methods are safe for
// concurrent use.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates or opens the bookmark database, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bookmark dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open bookmark db: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		section TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		added_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_added ON bookmarks(added_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Add inserts a bookmark, refreshing the stored copy when the story is
// already bookmarked.
func (s *Store) Add(b bookmark.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO bookmarks (id, title, link, section, summary, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			link = excluded.link,
			section = excluded.section,
			summary = excluded.summary,
			added_at = excluded.added_at
	`, b.ID, b.Title, b.Link, b.Section, b.Summary, b.AddedAt)
	if err != nil {
		return fmt.Errorf("save bookmark %s: %w", b.ID, err)
	}
	return nil
}

// Remove deletes a bookmark by story id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM bookmarks WHERE id = ?", id); err != nil {
		return fmt.Errorf("remove bookmark %s: %w", id, err)
	}
	return nil
}

// All returns bookmarks newest first.
func (s *Store) All() ([]bookmark.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, link, section, summary, added_at
		FROM bookmarks
		ORDER BY added_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	defer rows.Close()

	var out []bookmark.Bookmark
	for rows.Next() {
		var b bookmark.Bookmark
		if err := rows.Scan(&b.ID, &b.Title, &b.Link, &b.Section, &b.Summary, &b.AddedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
