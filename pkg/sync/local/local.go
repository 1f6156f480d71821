// Package local implements the external-store interfaces over a directory
// on the local filesystem.
package local

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docwell/docwell/pkg/sync"
)

// DirFolder is a live handle to a directory.
type DirFolder struct {
	path string
}

// Open returns a handle to an existing directory.
func Open(path string) (*DirFolder, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &sync.ExternalStoreError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return nil, &sync.ExternalStoreError{Path: path, Err: fmt.Errorf("not a directory")}
	}
	return &DirFolder{path: path}, nil
}

func (f *DirFolder) Name() string {
	return filepath.Base(f.path)
}

// Path returns the directory path backing this folder.
func (f *DirFolder) Path() string {
	return f.path
}

func (f *DirFolder) Entries() ([]sync.Entry, error) {
	dirents, err := os.ReadDir(f.path)
	if err != nil {
		return nil, &sync.ExternalStoreError{Path: f.path, Err: err}
	}
	entries := make([]sync.Entry, 0, len(dirents))
	for _, d := range dirents {
		kind := sync.KindFile
		if d.IsDir() {
			kind = sync.KindFolder
		}
		entries = append(entries, sync.Entry{Name: d.Name(), Kind: kind})
	}
	return entries, nil
}

// Folder opens the named subdirectory, creating it if absent.
func (f *DirFolder) Folder(name string) (sync.Folder, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(f.path, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, &sync.ExternalStoreError{Path: path, Err: err}
	}
	return &DirFolder{path: path}, nil
}

// File returns a handle to the named file; the file itself is materialized
// on the first Write, so repeated calls for an existing name just reuse it.
func (f *DirFolder) File(name string) (sync.File, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &DirFile{path: filepath.Join(f.path, name)}, nil
}

// OpenFile returns a handle to an existing file only.
func (f *DirFolder) OpenFile(name string) (sync.File, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(f.path, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &sync.ExternalStoreError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &sync.ExternalStoreError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	return &DirFile{path: path}, nil
}

// checkName rejects names that would escape the folder.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return &sync.ExternalStoreError{Path: name, Err: fmt.Errorf("invalid entry name")}
	}
	return nil
}

// DirFile is a live handle to a file.
type DirFile struct {
	path string
}

func (f *DirFile) Name() string {
	return filepath.Base(f.path)
}

func (f *DirFile) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", &sync.ExternalStoreError{Path: f.path, Err: err}
	}
	return string(data), nil
}

func (f *DirFile) Write(content string) error {
	if err := os.WriteFile(f.path, []byte(content), 0644); err != nil {
		return &sync.ExternalStoreError{Path: f.path, Err: err}
	}
	return nil
}
