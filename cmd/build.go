package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leonardomso/press/internal/config"
	"github.com/leonardomso/press/internal/helpers"
	"github.com/leonardomso/press/internal/output"
	"github.com/leonardomso/press/internal/scanner"
	"github.com/leonardomso/press/internal/stats"
	"github.com/leonardomso/press/internal/ui"
	"github.com/leonardomso/press/markdown"
)

// Flag variables.
var (
	outDir       string
	toStdout     bool
	extensions   []string
	xhtml        bool
	smart        bool
	completePage bool
	pageTitle    string
	pageCSS      string
	showStats    bool
	noConfig     bool
	include      []string
	exclude      []string
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Render markdown files to HTML",
	Long: `Render a file or a directory tree of markdown files to HTML.

If no path is provided, the current directory is rendered. Each source
file produces a sibling .html file, or a file under --out when set.

Exit codes:
  0 - All files rendered
  1 - At least one file could not be read or written

Examples:
  press build                          # Render current directory
  press build ./docs                   # Render a specific directory
  press build README.md --stdout       # Render one file to stdout
  press build -o public --title=Docs --complete-page
  press build --extensions=tables,fenced-code
  press build --exclude="vendor/**"

Config file (.pressrc.yaml or .pressrc.toml):
  extensions: [tables, fenced-code, autolink]
  html:
    smartypants: true
  scan:
    exclude: ["vendor/**"]
  output:
    dir: public`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	// Output options
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write rendered files to")
	buildCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write rendered output to stdout")

	// Renderer options
	buildCmd.Flags().StringSliceVar(&extensions, "extensions", nil,
		"Parser extensions to enable (default: the common set)")
	buildCmd.Flags().BoolVar(&xhtml, "xhtml", true, "Emit XHTML-style singleton tags")
	buildCmd.Flags().BoolVar(&smart, "smartypants", false, "Enable typographic substitutions")
	buildCmd.Flags().BoolVar(&completePage, "complete-page", false, "Wrap output in a full HTML page")
	buildCmd.Flags().StringVar(&pageTitle, "title", "", "Page title for --complete-page")
	buildCmd.Flags().StringVar(&pageCSS, "css", "", "Stylesheet href for --complete-page")

	// Scan options
	buildCmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns of files to include")
	buildCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of files to exclude")

	// Misc
	buildCmd.Flags().BoolVar(&showStats, "stats", false, "Show build statistics")
	buildCmd.Flags().BoolVar(&noConfig, "no-config", false, "Skip loading the .pressrc config file")
}

// loadBuildConfig loads the rc file (unless --no-config) and layers the
// command line flags on top.
func loadBuildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if !noConfig {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("extensions") {
		cfg.Extensions = extensions
	}
	if cmd.Flags().Changed("xhtml") {
		v := xhtml
		cfg.HTML.XHTML = &v
	}
	if cmd.Flags().Changed("smartypants") {
		cfg.HTML.Smartypants = smart
	}
	if cmd.Flags().Changed("complete-page") {
		cfg.HTML.CompletePage = completePage
	}
	if pageTitle != "" {
		cfg.HTML.Title = pageTitle
	}
	if pageCSS != "" {
		cfg.HTML.CSS = pageCSS
	}
	if len(include) > 0 {
		cfg.Scan.Include = include
	}
	if len(exclude) > 0 {
		cfg.Scan.Exclude = exclude
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if toStdout {
		cfg.Output.Stdout = true
	}

	return cfg, cfg.Validate()
}

func runBuild(cmd *cobra.Command, args []string) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := loadBuildConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := stats.New()

	// collect the sources: a single file, or a scanned tree
	st.StartScan()
	var files []string
	root := path
	if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
		files = []string{path}
		root = filepath.Dir(path)
	} else {
		files, err = scanner.FindFilesWithOptions(scanner.ScanOptions{
			Root:    path,
			Include: cfg.Scan.Include,
			Exclude: cfg.Scan.Exclude,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	st.EndScan(len(files))

	if len(files) == 0 {
		fmt.Println("No markdown files found.")
		return
	}

	// one parser context is reused across all files
	renderer := markdown.NewHTMLRenderer(cfg.RendererParameters())
	parser := markdown.NewParser(cfg.ParserExtensions(), 0, renderer)
	paths := output.Options{Root: root, Dir: cfg.Output.Dir}

	st.StartRender()
	failed := 0
	for _, file := range files {
		source, readErr := os.ReadFile(file)
		if readErr != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(
				fmt.Sprintf("  %s: %v", file, readErr)))
			failed++
			continue
		}

		rendered := parser.Render(source)
		st.AddFile(len(source), len(rendered))

		if cfg.Output.Stdout {
			os.Stdout.Write(rendered)
			continue
		}

		dst, pathErr := paths.PathFor(file)
		if pathErr == nil {
			pathErr = output.Write(dst, rendered)
		}
		if pathErr != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(
				fmt.Sprintf("  %s: %v", file, pathErr)))
			failed++
		}
	}
	st.EndRender()

	if !cfg.Output.Stdout {
		printBuildSummary(len(files), failed)
	}
	if showStats {
		fmt.Println(st.String())
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// printBuildSummary prints the one-line result of a build.
func printBuildSummary(total, failed int) {
	rendered := total - failed
	msg := fmt.Sprintf("Rendered %d %s", rendered, helpers.Pluralize(rendered, "file", "files"))
	if failed > 0 {
		fmt.Println(ui.ErrorStyle.Render(
			fmt.Sprintf("%s, %d failed", msg, failed)))
		return
	}
	fmt.Println(ui.SuccessStyle.Render(msg))
}
