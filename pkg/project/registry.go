// Package project remembers external project directories the user has
// synced with, so commands can refer to them by name.
package project

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Project is a registered external store location.
type Project struct {
	Name      string
	Path      string
	CreatedAt time.Time
	LastUsed  time.Time
}

// Registry manages project registration and lookup.
type Registry struct {
	db *sql.DB
}

// NewRegistry opens (creating if needed) the registry database under dataDir.
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projects.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{db: db}
	if err := r.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize registry: %w", err)
	}
	return r, nil
}

func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_projects_path ON projects(path);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Add registers a project, replacing any previous entry with the same name.
func (r *Registry) Add(name, path string) error {
	if name == "" {
		return fmt.Errorf("project name is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO projects (name, path, created_at, last_used)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET path = excluded.path, last_used = CURRENT_TIMESTAMP`,
		name, abs)
	if err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	return nil
}

// Get looks up a project by name.
func (r *Registry) Get(name string) (*Project, error) {
	var p Project
	err := r.db.QueryRow(`
		SELECT name, path, created_at, last_used FROM projects WHERE name = ?`,
		name).Scan(&p.Name, &p.Path, &p.CreatedAt, &p.LastUsed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// List returns all registered projects, most recently used first.
func (r *Registry) List() ([]*Project, error) {
	rows, err := r.db.Query(`
		SELECT name, path, created_at, last_used FROM projects ORDER BY last_used DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Name, &p.Path, &p.CreatedAt, &p.LastUsed); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// Touch bumps a project's last-used timestamp.
func (r *Registry) Touch(name string) error {
	_, err := r.db.Exec(`UPDATE projects SET last_used = CURRENT_TIMESTAMP WHERE name = ?`, name)
	return err
}

// Remove unregisters a project. The directory itself is untouched.
func (r *Registry) Remove(name string) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("remove project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project not found: %s", name)
	}
	return nil
}

// Close releases the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}
