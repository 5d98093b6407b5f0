package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leonardomso/press/internal/config"
	"github.com/leonardomso/press/internal/scanner"
	"github.com/leonardomso/press/internal/ui"
)

// previewCmd represents the preview command.
var previewCmd = &cobra.Command{
	Use:   "preview [path]",
	Short: "Browse rendered markdown in a terminal UI",
	Long: `Launch an interactive terminal UI over a tree of markdown files.

Pick a file from the list to see its rendered HTML; re-render with a
keystroke while editing the source in another window.

Controls:
  ↑/↓ or j/k    Navigate the file list
  enter         View the rendered file
  esc           Back to the list
  r             Re-render / re-scan
  q             Quit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		cfg := &config.Config{}
		if !noConfig {
			loaded, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
		}

		model := ui.New(scanner.ScanOptions{
			Root:    path,
			Include: cfg.Scan.Include,
			Exclude: cfg.Scan.Exclude,
		}, cfg.ParserExtensions(), cfg.RendererParameters())

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running preview: %v\n", err)
			os.Exit(1) //nolint:revive // deep-exit is acceptable for CLI entry points
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&noConfig, "no-config", false, "Skip loading the .pressrc config file")
}
