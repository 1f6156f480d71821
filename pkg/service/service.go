// Package service wires the tree store, persistence gateway, synchronizer,
// search index and renderer together behind the operations the commands
// call. Every mutation persists the tree before returning.
package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/docwell/docwell/pkg/models"
	"github.com/docwell/docwell/pkg/project"
	"github.com/docwell/docwell/pkg/render"
	"github.com/docwell/docwell/pkg/search"
	"github.com/docwell/docwell/pkg/store"
	"github.com/docwell/docwell/pkg/sync"
	"github.com/docwell/docwell/pkg/tree"
)

// Config holds service configuration.
type Config struct {
	DataDir   string
	Editor    string
	Extension string
}

// Service is the core documentation service. Operations are synchronous and
// run to completion one at a time; the service holds no locks and is not
// meant for concurrent callers.
type Service struct {
	Store    *tree.Store
	Gateway  *store.Gateway
	Syncer   *sync.Syncer
	Index    *search.Index
	Projects *project.Registry
	Renderer *render.Renderer
	Config   *Config
	Log      *logrus.Logger
}

// New builds a service from config, loading any previously persisted tree.
func New(cfg *Config, log *logrus.Logger) (*Service, error) {
	gateway, err := store.NewGateway(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	index, err := search.NewIndex(filepath.Join(cfg.DataDir, "index.db"))
	if err != nil {
		gateway.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	projects, err := project.NewRegistry(cfg.DataDir)
	if err != nil {
		gateway.Close()
		index.Close()
		return nil, fmt.Errorf("create project registry: %w", err)
	}

	return &Service{
		Store:    tree.NewStore(gateway.Load()),
		Gateway:  gateway,
		Syncer:   sync.NewSyncer(cfg.Extension, log),
		Index:    index,
		Projects: projects,
		Renderer: render.New(),
		Config:   cfg,
		Log:      log,
	}, nil
}

func (s *Service) persist() error {
	if err := s.Gateway.Save(s.Store.Tree()); err != nil {
		return fmt.Errorf("persist tree: %w", err)
	}
	return nil
}

// CreateSection adds a section and persists.
func (s *Service) CreateSection(name, parentID string) (*models.Item, error) {
	item, err := s.Store.CreateItem(name, parentID)
	if err != nil {
		return nil, err
	}
	return item, s.persist()
}

// CreatePage adds a page with starter content and persists.
func (s *Service) CreatePage(parentID, title string) (*models.Page, error) {
	page, err := s.Store.CreatePage(parentID, title)
	if err != nil {
		return nil, err
	}
	return page, s.persist()
}

// RenameSection renames a section and persists.
func (s *Service) RenameSection(id, name string) error {
	if err := s.Store.RenameItem(id, name); err != nil {
		return err
	}
	return s.persist()
}

// UpdatePage replaces a page's title and content and persists.
func (s *Service) UpdatePage(id, title, content string) error {
	if err := s.Store.UpdatePage(id, title, content); err != nil {
		return err
	}
	return s.persist()
}

// DeleteSection removes a section subtree and persists. It returns the ids
// of all pages that went with it so callers displaying one of them can fall
// back to a default view.
func (s *Service) DeleteSection(id string) ([]string, error) {
	deleted, err := s.Store.DeleteItem(id)
	if err != nil {
		return nil, err
	}
	return deleted, s.persist()
}

// DeletePage removes a single page and persists.
func (s *Service) DeletePage(id string) error {
	if err := s.Store.DeletePage(id); err != nil {
		return err
	}
	return s.persist()
}

// MovePage re-homes a page and persists.
func (s *Service) MovePage(id, parentID string) error {
	if err := s.Store.MovePage(id, parentID); err != nil {
		return err
	}
	return s.persist()
}

// ClearAll wipes the tree, all external bindings, and the persisted blob.
func (s *Service) ClearAll() error {
	s.Store.Reset()
	s.Syncer.Reset()
	if err := s.Gateway.Clear(); err != nil {
		return err
	}
	return s.persist()
}

// Import replaces the tree with the contents of a user-picked directory.
// Cancellation is passed through as sync.ErrCancelled; callers treat it as
// a no-op.
func (s *Service) Import(picker sync.Picker) (*sync.Report, error) {
	root, err := picker.Pick()
	if err != nil {
		return nil, err
	}

	report, err := s.Syncer.Import(root, s.Store)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if err := s.persist(); err != nil {
		return report, err
	}
	if err := s.Index.Reindex(s.Store); err != nil {
		s.Log.Warnf("reindex after import: %v", err)
	}
	return report, nil
}

// Export writes the tree out to a user-picked directory. The tree itself is
// unchanged; only the syncer's handle bindings grow.
func (s *Service) Export(picker sync.Picker) (*sync.Report, error) {
	root, err := picker.Pick()
	if err != nil {
		return nil, err
	}

	report, err := s.Syncer.Export(root, s.Store)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return report, nil
}

// SearchPages rebuilds the index from the current tree and runs the query.
func (s *Service) SearchPages(query string, limit int) ([]search.Hit, error) {
	if err := s.Index.Reindex(s.Store); err != nil {
		return nil, fmt.Errorf("reindex: %w", err)
	}
	return s.Index.Search(query, limit)
}

// RenderPage converts a page's Markdown to HTML.
func (s *Service) RenderPage(id string) (string, error) {
	page, ok := s.Store.Tree().Pages[id]
	if !ok {
		return "", &tree.NotFoundError{Kind: "page", ID: id}
	}
	return s.Renderer.Render(page.Content)
}

// EditPage opens the page's content in the configured editor and saves the
// result back, keeping the title.
func (s *Service) EditPage(id string) error {
	page, ok := s.Store.Tree().Pages[id]
	if !ok {
		return &tree.NotFoundError{Kind: "page", ID: id}
	}

	tmp, err := os.CreateTemp("", "docwell-*"+s.pageExtension())
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(page.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := s.openInEditor(tmpPath); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read edited file: %w", err)
	}
	return s.UpdatePage(id, page.Title, string(edited))
}

func (s *Service) pageExtension() string {
	if s.Config.Extension != "" {
		return s.Config.Extension
	}
	return sync.DefaultExtension
}

func (s *Service) openInEditor(path string) error {
	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Close releases the service's databases.
func (s *Service) Close() error {
	var firstErr error
	for _, c := range []interface{ Close() error }{s.Index, s.Projects, s.Gateway} {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
