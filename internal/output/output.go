// Package output maps markdown source paths to their rendered HTML paths
// and writes the rendered files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options controls where rendered files land.
type Options struct {
	// Root is the scanned source root; relative layout under it is
	// preserved in Dir.
	Root string

	// Dir is the output directory. Empty writes each file next to its
	// source.
	Dir string
}

// PathFor returns the output path for a markdown source file: the source
// path with its extension replaced by .html, relocated under Dir when one
// is set.
func (o Options) PathFor(src string) (string, error) {
	html := strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
	if o.Dir == "" {
		return html, nil
	}

	rel, err := filepath.Rel(o.Root, html)
	if err != nil {
		return "", fmt.Errorf("relocating %s: %w", src, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("source %s is outside the scan root %s", src, o.Root)
	}
	return filepath.Join(o.Dir, rel), nil
}

// Write writes rendered content to path, creating parent directories as
// needed.
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
