// Package sync maps the document tree onto a hierarchical external store:
// directories become sections, markdown files become pages. Import and
// export are partial-failure tolerant; a bad entry is skipped and counted,
// never aborting the walk.
package sync

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by a Picker when the user dismissed the
// selection. Callers treat it as a no-op, not a failure.
var ErrCancelled = errors.New("selection cancelled")

// EntryKind distinguishes folder from file entries during a walk.
type EntryKind string

const (
	KindFolder EntryKind = "folder"
	KindFile   EntryKind = "file"
)

// Entry is a single child of a folder, as reported by the store.
type Entry struct {
	Name string
	Kind EntryKind
}

// Folder is a live handle to a directory in the external store. Folder and
// File are open-or-create and must be idempotent: asking for an existing
// name reuses it.
type Folder interface {
	// Name returns the directory's base name.
	Name() string
	// Entries lists the folder's children in store-native order.
	Entries() ([]Entry, error)
	// Folder opens the named subdirectory, creating it if absent.
	Folder(name string) (Folder, error)
	// File opens the named file for writing, creating it if absent.
	File(name string) (File, error)
	// OpenFile opens an existing file; it fails when the name is absent.
	OpenFile(name string) (File, error)
}

// File is a live handle to a document in the external store.
type File interface {
	Name() string
	Read() (string, error)
	Write(content string) error
}

// Picker yields a root folder chosen by the user, or ErrCancelled when the
// selection was dismissed.
type Picker interface {
	Pick() (Folder, error)
}

// ExternalStoreError wraps an I/O failure against a single store entry.
type ExternalStoreError struct {
	Path string
	Err  error
}

func (e *ExternalStoreError) Error() string {
	return fmt.Sprintf("external store: %s: %v", e.Path, e.Err)
}

func (e *ExternalStoreError) Unwrap() error {
	return e.Err
}

// Report summarizes one import or export run.
type Report struct {
	Items  int      // sections created (import) or directories ensured (export)
	Pages  int      // pages created (import) or files written (export)
	Failed int      // entries skipped after an error
	Errors []string // one message per skipped entry
}

func (r *Report) fail(context string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", context, err))
}

// Summary renders the report for command output.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d sections, %d pages", r.Items, r.Pages)
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d skipped", r.Failed)
	}
	return s
}
