package service

import (
	"fmt"

	"github.com/docwell/docwell/pkg/sync"
)

// welcomeContent seeds a freshly created project directory.
const welcomeContent = `# Welcome to Your Documentation Project

This directory is managed with docwell. To get started:

1. Create sections: ` + "`docwell section new NAME`" + `
2. Nest them: ` + "`docwell section new NAME --under ID`" + `
3. Add pages: ` + "`docwell page new TITLE --section ID`" + `
4. Export here: ` + "`docwell export PATH`" + `

Pages are plain Markdown files; sections are directories. Edit them with
any tool you like and re-import with ` + "`docwell import PATH`" + `.
`

// StartProject begins a fresh project in a user-picked directory: the tree
// and all external bindings are reset, a welcome README is written, and the
// empty state is persisted. The picked root is returned so callers can act
// on the resolved directory. Cancellation is passed through untouched.
func (s *Service) StartProject(picker sync.Picker) (sync.Folder, error) {
	root, err := picker.Pick()
	if err != nil {
		return nil, err
	}

	s.Store.Reset()
	s.Syncer.Reset()

	file, err := root.File("README" + s.pageExtension())
	if err != nil {
		return nil, fmt.Errorf("create welcome file: %w", err)
	}
	if err := file.Write(welcomeContent); err != nil {
		return nil, fmt.Errorf("write welcome file: %w", err)
	}

	if err := s.persist(); err != nil {
		return nil, err
	}
	return root, nil
}
