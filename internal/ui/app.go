// Package ui provides an interactive terminal user interface for previewing
// rendered markdown. It uses the Bubble Tea framework: a file browser over
// the scanned tree on one side of the state machine, a scrollable view of
// the rendered HTML on the other.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leonardomso/press/internal/scanner"
	"github.com/leonardomso/press/markdown"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

// appState represents the current phase of the application lifecycle.
type appState int

const (
	stateScanning appState = iota // Finding markdown files
	stateBrowsing                 // Choosing a file (list view)
	stateViewing                  // Reading one rendered file
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the main application model.
type Model struct {
	list     list.Model
	viewport viewport.Model
	help     help.Model
	spinner  spinner.Model
	err      error

	// Config
	root   string
	opts   scanner.ScanOptions
	ext    markdown.Extensions
	params markdown.HTMLRendererParameters
	keys   KeyMap

	// Data
	files   []string
	current string

	// State
	state appState

	// UI state
	width    int
	height   int
	quitting bool
	showHelp bool
}

// New creates a Model that scans root and renders with the given parser
// extensions and renderer parameters.
func New(opts scanner.ScanOptions, ext markdown.Extensions, params markdown.HTMLRendererParameters) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(SpinnerStyle()),
	)

	fileList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "markdown files"
	fileList.SetShowHelp(false)

	return Model{
		list:     fileList,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		spinner:  sp,
		root:     opts.Root,
		opts:     opts,
		ext:      ext,
		params:   params,
		keys:     DefaultKeyMap(),
		state:    stateScanning,
	}
}

// Init starts the spinner and the file scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, ScanFilesCmd(m.opts))
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FilesFoundMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.quitting = true
			return m, tea.Quit
		}
		m.files = msg.Files
		m.state = stateBrowsing
		return m, m.list.SetItems(m.fileItems())

	case FileRenderedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.current = msg.Path
		m.viewport.SetContent(string(msg.Output))
		m.viewport.GotoTop()
		m.state = stateViewing
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleKey dispatches key presses by state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.state == stateBrowsing {
			if item, ok := m.list.SelectedItem().(FileItem); ok {
				return m, RenderFileCmd(item.Path, m.ext, m.params)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.state == stateViewing {
			m.state = stateBrowsing
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		switch m.state {
		case stateViewing:
			return m, RenderFileCmd(m.current, m.ext, m.params)
		case stateBrowsing:
			m.state = stateScanning
			return m, tea.Batch(m.spinner.Tick, ScanFilesCmd(m.opts))
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// updateComponents forwards messages to the active component.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateBrowsing:
		m.list, cmd = m.list.Update(msg)
	case stateViewing:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// fileItems converts the scanned paths into list items.
func (m Model) fileItems() []list.Item {
	items := make([]list.Item, 0, len(m.files))
	for _, f := range m.files {
		rel, err := filepath.Rel(m.root, f)
		if err != nil {
			rel = f
		}
		var size int64
		if info, err := os.Stat(f); err == nil {
			size = info.Size()
		}
		items = append(items, FileItem{Path: f, Rel: filepath.ToSlash(rel), Size: size})
	}
	return items
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
		}
		return ""
	}

	switch m.state {
	case stateScanning:
		return fmt.Sprintf("\n %s scanning %s for markdown files...\n",
			m.spinner.View(), MutedStyle.Render(m.root))

	case stateViewing:
		title := ViewerTitleStyle.Render(m.current)
		view := title + "\n" + m.viewport.View()
		if m.err != nil {
			view += "\n" + ErrorStyle.Render(fmt.Sprintf("render error: %v", m.err))
		}
		return view + "\n" + m.footer()

	default:
		view := m.list.View()
		if len(m.files) == 0 {
			view = TitleStyle.Render("press preview") + "\n" +
				MutedStyle.Render("no markdown files found under "+m.root)
		}
		return view + "\n" + m.footer()
	}
}

// footer renders the help line.
func (m Model) footer() string {
	if m.showHelp {
		return HelpStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
