// Package search maintains a full-text index over the current tree's pages.
// The index is derived data: it is rebuilt from the tree on demand and can
// always be thrown away.
package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/docwell/docwell/pkg/tree"
)

// Hit is one search result.
type Hit struct {
	PageID  string
	Title   string
	Path    string // section path, e.g. "Academic → Projects"
	Snippet string
}

// Index manages the page search index.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens the index database at dbPath. Pass ":memory:" for an
// ephemeral index.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize index: %w", err)
	}
	return idx, nil
}

func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS pages_meta (
		page_id TEXT PRIMARY KEY,
		title TEXT,
		section_path TEXT,
		content TEXT
	);
	`
	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			page_id UNINDEXED,
			title,
			section_path,
			content,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// FTS unavailable in this build; fall back to LIKE scans.
			idx.useFTS = false
		}
	}
	return nil
}

func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// Reindex rebuilds the index from the current tree.
func (idx *Index) Reindex(st *tree.Store) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM pages_meta"); err != nil {
		return err
	}
	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM pages_fts"); err != nil {
			return err
		}
	}

	for id, page := range st.Tree().Pages {
		sectionPath := ""
		if page.ParentID != "" {
			// A broken parent chain only degrades the displayed path.
			sectionPath, _ = st.PathOf(page.ParentID)
		}

		if _, err := tx.Exec(`
			INSERT INTO pages_meta (page_id, title, section_path, content)
			VALUES (?, ?, ?, ?)`,
			id, page.Title, sectionPath, page.Content); err != nil {
			return err
		}
		if idx.useFTS {
			if _, err := tx.Exec(`
				INSERT INTO pages_fts (page_id, title, section_path, content)
				VALUES (?, ?, ?, ?)`,
				id, page.Title, sectionPath, page.Content); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Search returns pages matching the query, best first.
func (idx *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 50
	}
	if idx.useFTS {
		return idx.searchWithFTS(query, limit)
	}
	return idx.searchWithLike(query, limit)
}

func (idx *Index) searchWithFTS(query string, limit int) ([]Hit, error) {
	rows, err := idx.db.Query(`
		SELECT page_id, title, section_path,
			snippet(pages_fts, 3, '<match>', '</match>', '...', 24) AS snippet
		FROM pages_fts
		WHERE pages_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fts search: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func (idx *Index) searchWithLike(query string, limit int) ([]Hit, error) {
	pattern := "%" + strings.ReplaceAll(query, "%", "") + "%"
	rows, err := idx.db.Query(`
		SELECT page_id, title, section_path, substr(content, 1, 120) AS snippet
		FROM pages_meta
		WHERE title LIKE ? OR content LIKE ?
		ORDER BY title
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("like search: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func scanHits(rows *sql.Rows) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.PageID, &h.Title, &h.Path, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Close releases the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}
