// Package config handles loading configuration from .pressrc files.
// Both YAML (.pressrc.yaml) and TOML (.pressrc.toml) forms are supported;
// the decoder is picked from the file extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/leonardomso/press/markdown"
)

// DefaultConfigFileNames are the configuration file names probed in order.
var DefaultConfigFileNames = []string{".pressrc.yaml", ".pressrc.yml", ".pressrc.toml"}

// Config represents the complete configuration structure.
type Config struct {
	// Extensions lists the parser extensions to enable.
	// Supported: no-intra-emphasis, tables, fenced-code, autolink,
	// strikethrough, space-headers, superscript, lax-spacing
	// If empty, the common set is used at runtime.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// HTML holds renderer preferences.
	HTML HTMLConfig `yaml:"html" toml:"html"`

	// Scan holds scanner configuration.
	Scan ScanConfig `yaml:"scan" toml:"scan"`

	// Output holds output preferences.
	Output OutputConfig `yaml:"output" toml:"output"`
}

// HTMLConfig holds HTML renderer settings.
type HTMLConfig struct {
	// XHTML selects XHTML-style singleton tags (<br/>).
	// Default: true (set at runtime).
	XHTML *bool `yaml:"xhtml" toml:"xhtml"`

	// Smartypants enables typographic substitution of quotes, dashes,
	// ellipses and fractions.
	Smartypants bool `yaml:"smartypants" toml:"smartypants"`

	// CompletePage wraps the rendered body in a full HTML document.
	CompletePage bool `yaml:"completePage" toml:"completePage"`

	// Title is the page title used with completePage.
	Title string `yaml:"title" toml:"title"`

	// CSS is a stylesheet href used with completePage.
	CSS string `yaml:"css" toml:"css"`
}

// ScanConfig holds scanner settings for file discovery.
type ScanConfig struct {
	// Include specifies glob patterns for paths to include.
	// If empty, all markdown files are included.
	// Example: ["docs/**", "README.md"]
	Include []string `yaml:"include" toml:"include"`

	// Exclude specifies glob patterns for paths to exclude.
	// Example: ["node_modules/**", "vendor/**"]
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

// OutputConfig holds output preferences for the build command.
type OutputConfig struct {
	// Dir is the directory rendered files are written to.
	// Empty means next to their sources.
	Dir string `yaml:"dir" toml:"dir"`

	// Stdout writes rendered output to stdout instead of files.
	Stdout bool `yaml:"stdout" toml:"stdout"`
}

// validExtensionNames maps configuration names to parser extension bits.
var validExtensionNames = map[string]markdown.Extensions{
	"no-intra-emphasis": markdown.NoIntraEmphasis,
	"tables":            markdown.Tables,
	"fenced-code":       markdown.FencedCode,
	"autolink":          markdown.Autolink,
	"strikethrough":     markdown.Strikethrough,
	"space-headers":     markdown.SpaceHeaders,
	"superscript":       markdown.Superscript,
	"lax-spacing":       markdown.LaxSpacing,
}

// Load reads configuration from the first .pressrc file found in the
// current directory. Returns an empty config if none exists (not an error).
func Load() (*Config, error) {
	for _, name := range DefaultConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return LoadFrom(name)
		}
	}
	return &Config{}, nil
}

// LoadFrom reads configuration from the given path. A missing file yields
// an empty config; a file that exists but cannot be parsed is an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsEmpty reports whether no settings were provided.
func (c *Config) IsEmpty() bool {
	return len(c.Extensions) == 0 &&
		c.HTML == HTMLConfig{} &&
		len(c.Scan.Include) == 0 && len(c.Scan.Exclude) == 0 &&
		c.Output == OutputConfig{}
}

// Validate checks extension names and glob patterns.
func (c *Config) Validate() error {
	for _, name := range c.Extensions {
		if _, ok := validExtensionNames[strings.ToLower(name)]; !ok {
			return fmt.Errorf("unknown extension %q (valid: %s)",
				name, strings.Join(ValidExtensionNames(), ", "))
		}
	}
	for _, pattern := range c.Scan.Include {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range c.Scan.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// ValidExtensionNames returns the accepted extension names, sorted.
func ValidExtensionNames() []string {
	names := make([]string, 0, len(validExtensionNames))
	for name := range validExtensionNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParserExtensions resolves the configured extension names to the parser's
// bitmask. An empty list selects the common set.
func (c *Config) ParserExtensions() markdown.Extensions {
	if len(c.Extensions) == 0 {
		return markdown.CommonExtensions
	}
	var ext markdown.Extensions
	for _, name := range c.Extensions {
		ext |= validExtensionNames[strings.ToLower(name)]
	}
	return ext
}

// HTMLFlags resolves the HTML section to renderer flags.
func (c *Config) HTMLFlags() markdown.HTMLFlags {
	var flags markdown.HTMLFlags
	if c.HTML.XHTML == nil || *c.HTML.XHTML {
		flags |= markdown.UseXHTML
	}
	if c.HTML.Smartypants {
		flags |= markdown.Smartypants | markdown.SmartypantsFractions | markdown.SmartypantsLatexDashes
	}
	if c.HTML.CompletePage {
		flags |= markdown.CompletePage
	}
	return flags
}

// RendererParameters builds the HTML renderer parameters for this config.
func (c *Config) RendererParameters() markdown.HTMLRendererParameters {
	return markdown.HTMLRendererParameters{
		Flags: c.HTMLFlags(),
		Title: c.HTML.Title,
		CSS:   c.HTML.CSS,
	}
}
