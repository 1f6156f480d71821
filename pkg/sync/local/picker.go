package local

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docwell/docwell/pkg/sync"
)

// DirPicker resolves the project directory for a sync run. When Path is set
// (typically from a command argument) it is used directly; otherwise the
// picker prompts on the terminal. An empty answer means the user backed
// out, which is a cancellation, not an error.
type DirPicker struct {
	Path string
	In   io.Reader
	Out  io.Writer
}

func (p *DirPicker) Pick() (sync.Folder, error) {
	path := strings.TrimSpace(p.Path)
	if path == "" {
		in := p.In
		if in == nil {
			in = os.Stdin
		}
		out := p.Out
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprint(out, "Project directory: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return nil, sync.ErrCancelled
		}
		path = strings.TrimSpace(line)
		if path == "" {
			return nil, sync.ErrCancelled
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &sync.ExternalStoreError{Path: path, Err: err}
	}
	return Open(abs)
}
