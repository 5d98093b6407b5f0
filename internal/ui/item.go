package ui

import (
	"fmt"
	"path/filepath"

	"github.com/leonardomso/press/internal/helpers"
)

// FileItem wraps a markdown source file to implement list.Item.
type FileItem struct {
	// Path is the path on disk.
	Path string

	// Rel is the path relative to the scanned root, used for display.
	Rel string

	// Size is the source size in bytes.
	Size int64
}

// FilterValue returns the string used for filtering.
// Implements list.Item interface.
func (i FileItem) FilterValue() string {
	return i.Rel
}

// Title returns the main display text for the item.
// Implements list.DefaultItem interface.
func (i FileItem) Title() string {
	return helpers.TruncatePath(i.Rel, 60)
}

// Description returns secondary text for the item.
// Implements list.DefaultItem interface.
func (i FileItem) Description() string {
	return fmt.Sprintf("%s · %d bytes", filepath.Dir(i.Path), i.Size)
}
