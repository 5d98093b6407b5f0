package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leonardomso/press/internal/scanner"
	"github.com/leonardomso/press/markdown"
)

// ScanFilesCmd returns a command that discovers markdown files under the
// given root, honoring the include/exclude patterns from the config file.
func ScanFilesCmd(opts scanner.ScanOptions) tea.Cmd {
	return func() tea.Msg {
		files, err := scanner.FindFilesWithOptions(opts)
		return FilesFoundMsg{Files: files, Err: err}
	}
}

// RenderFileCmd reads and renders one markdown file. A parser context is
// not safe for concurrent use, so each command builds its own.
func RenderFileCmd(path string, ext markdown.Extensions, params markdown.HTMLRendererParameters) tea.Cmd {
	return func() tea.Msg {
		source, err := os.ReadFile(path)
		if err != nil {
			return FileRenderedMsg{Path: path, Err: err}
		}
		renderer := markdown.NewHTMLRenderer(params)
		out := markdown.Markdown(source, renderer, ext)
		return FileRenderedMsg{Path: path, Output: out}
	}
}
