// Package store persists the document tree between sessions in a local
// SQLite database, keyed blob style. Persistence failures on load are never
// fatal: a corrupt or missing blob degrades to an empty tree.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/docwell/docwell/pkg/models"
)

// BlobKey is the fixed namespace the serialized tree lives under.
const BlobKey = "documentation-data"

// Gateway saves and loads the tree blob.
type Gateway struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewGateway opens (creating if needed) the database under dataDir.
func NewGateway(dataDir string, log *logrus.Logger) (*Gateway, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docwell.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	g := &Gateway{db: db, log: log}
	if err := g.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize gateway: %w", err)
	}
	return g, nil
}

func (g *Gateway) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := g.db.Exec(schema)
	return err
}

// Save serializes the tree under the fixed key, replacing any previous blob.
// External store handles are not part of the serialized state.
func (g *Gateway) Save(t *models.Tree) error {
	data, err := json.Marshal(t.ToBlob())
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}

	_, err = g.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		BlobKey, string(data))
	if err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Load returns the persisted tree, or an empty tree when nothing usable is
// stored. Corruption is logged and recovered, never surfaced as an error.
func (g *Gateway) Load() *models.Tree {
	var value string
	err := g.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, BlobKey).Scan(&value)
	if err == sql.ErrNoRows {
		return models.NewTree()
	}
	if err != nil {
		g.log.Warnf("read blob: %v, starting fresh", err)
		return models.NewTree()
	}

	var blob models.Blob
	if err := json.Unmarshal([]byte(value), &blob); err != nil {
		g.log.Warnf("corrupted data blob, starting fresh: %v", err)
		return models.NewTree()
	}
	if blob.Items == nil {
		// Pre-sections blob layout or an empty object; treat as absent.
		g.log.Debug("stored blob has no items mapping, starting fresh")
		return models.NewTree()
	}
	return models.FromBlob(&blob)
}

// Clear removes the persisted blob entirely.
func (g *Gateway) Clear() error {
	if _, err := g.db.Exec(`DELETE FROM blobs WHERE key = ?`, BlobKey); err != nil {
		return fmt.Errorf("clear blob: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (g *Gateway) Close() error {
	return g.db.Close()
}
