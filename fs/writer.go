// Package fs provides file-based storage for converted fragments.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/epidoc"
)

// SourceToPath converts an EpiDoc source path to a relative output path
// with the given extension. Absolute and parent-relative parts are dropped
// so the result always stays inside the output directory.
// Example: inscriptions/HD006705.xml → inscriptions/HD006705.html
func SourceToPath(source, ext string) (string, error) {
	p := filepath.ToSlash(filepath.Clean(source))
	p = strings.TrimPrefix(p, filepath.ToSlash(filepath.VolumeName(source)))

	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "", epidoc.Errorf(epidoc.EINVALID, "source %q has no file name", source)
	}

	p = strings.Join(parts, "/")
	p = strings.TrimSuffix(p, filepath.Ext(p))
	return filepath.FromSlash(p + ext), nil
}

// Ensure Writer implements epidoc.FragmentWriter at compile time.
var _ epidoc.FragmentWriter = (*Writer)(nil)

// Writer writes fragments as files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteFragment writes a fragment to disk under its source path.
func (w *Writer) WriteFragment(ctx context.Context, f *epidoc.Fragment) error {
	if err := f.Validate(); err != nil {
		return err
	}

	relPath, err := SourceToPath(f.Source, f.Extension)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(f.Content+"\n"), 0644)
}
