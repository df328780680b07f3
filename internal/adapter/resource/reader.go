package resource

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reader loads newline-delimited word lists relative to a resource root.
type Reader struct {
	fs   afero.Fs    // Filesystem holding the resource files
	root string      // Directory that resource names are resolved against
	log  *zap.Logger // Structured logger
}

// NewReader creates a Reader over fs rooted at root.
func NewReader(fs afero.Fs, root string, log *zap.Logger) *Reader {
	return &Reader{fs: fs, root: root, log: log}
}

// NewOsReader creates a Reader over the operating system filesystem.
func NewOsReader(root string, log *zap.Logger) *Reader {
	return NewReader(afero.NewOsFs(), root, log)
}

// ReadLines returns the trimmed, non-blank lines of the named resource in
// file order. A UTF-8 byte order mark on the first line is dropped.
func (r *Reader) ReadLines(name string) ([]string, error) {
	path := filepath.Join(r.root, name)

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.log.Debug("resource loaded", zap.String("path", path), zap.Int("lines", len(lines)))
	return lines, nil
}
