package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "press",
	Short: "A fast Markdown to HTML converter",
	Long: `Press converts Markdown files to HTML.

It renders the Sundown dialect with the usual extensions (tables, fenced
code, autolinks, strikethrough) and writes one HTML file per source. Use
'build' for CI/scripts or 'preview' for a terminal UI over the rendered
output.

Examples:
  press build               # Render the current directory
  press build ./docs -o out # Render a tree into out/
  press build --stdout f.md # Render one file to stdout
  press preview             # Browse rendered files in a TUI`,
}

// SetVersion wires the build-time version string into the root command.
func SetVersion(version string) {
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
