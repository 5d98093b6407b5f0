package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardomso/press/markdown"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("ValidFullConfig", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/valid_full.yaml")
		require.NoError(t, err)

		assert.Len(t, cfg.Extensions, 3)
		assert.Contains(t, cfg.Extensions, "tables")
		assert.Contains(t, cfg.Extensions, "fenced-code")
		assert.Contains(t, cfg.Extensions, "autolink")

		require.NotNil(t, cfg.HTML.XHTML)
		assert.False(t, *cfg.HTML.XHTML)
		assert.True(t, cfg.HTML.Smartypants)
		assert.True(t, cfg.HTML.CompletePage)
		assert.Equal(t, "My Site", cfg.HTML.Title)
		assert.Equal(t, "assets/site.css", cfg.HTML.CSS)

		assert.Equal(t, []string{"docs/**"}, cfg.Scan.Include)
		assert.Len(t, cfg.Scan.Exclude, 2)
		assert.Equal(t, "public", cfg.Output.Dir)
	})

	t.Run("ValidTOMLConfig", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/valid_full.toml")
		require.NoError(t, err)

		assert.Equal(t, []string{"tables", "strikethrough"}, cfg.Extensions)
		assert.True(t, cfg.HTML.Smartypants)
		assert.Equal(t, "From TOML", cfg.HTML.Title)
		assert.Equal(t, []string{"node_modules/**"}, cfg.Scan.Exclude)
		assert.Equal(t, "out", cfg.Output.Dir)
	})

	t.Run("ValidPartialConfig", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/valid_partial.yaml")
		require.NoError(t, err)

		assert.Equal(t, []string{"tables"}, cfg.Extensions)
		assert.Empty(t, cfg.Scan.Include)
		assert.Empty(t, cfg.Output.Dir)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/empty.yaml")
		require.NoError(t, err)
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/invalid.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/unknown_extension.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "definitely-not-real")
	})

	t.Run("BadGlobPattern", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/bad_glob.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("FileNotExists", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom("testdata/nonexistent.yaml")
		require.NoError(t, err) // Not an error, returns empty config
		assert.NotNil(t, cfg)
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("ExtraFields", func(t *testing.T) {
		t.Parallel()
		// Should ignore unknown fields without error
		cfg, err := LoadFrom("testdata/extra_fields.yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"tables"}, cfg.Extensions)
	})
}

func TestLoad(t *testing.T) {
	t.Run("LoadsDefaultFile", func(t *testing.T) {
		// This test runs in the config package directory where there is
		// no .pressrc file, so it should return an empty config
		cfg, err := Load()
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}

func TestParserExtensions(t *testing.T) {
	t.Parallel()

	t.Run("EmptyDefaultsToCommon", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		assert.Equal(t, markdown.CommonExtensions, cfg.ParserExtensions())
	})

	t.Run("NamedSubset", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Extensions: []string{"tables", "Fenced-Code"}}
		assert.Equal(t, markdown.Tables|markdown.FencedCode, cfg.ParserExtensions())
	})
}

func TestHTMLFlags(t *testing.T) {
	t.Parallel()

	t.Run("XHTMLOnByDefault", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		assert.NotZero(t, cfg.HTMLFlags()&markdown.UseXHTML)
	})

	t.Run("XHTMLCanBeDisabled", func(t *testing.T) {
		t.Parallel()
		off := false
		cfg := &Config{HTML: HTMLConfig{XHTML: &off}}
		assert.Zero(t, cfg.HTMLFlags()&markdown.UseXHTML)
	})

	t.Run("SmartypantsBundlesVariants", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{HTML: HTMLConfig{Smartypants: true}}
		flags := cfg.HTMLFlags()
		assert.NotZero(t, flags&markdown.Smartypants)
		assert.NotZero(t, flags&markdown.SmartypantsFractions)
	})

	t.Run("RendererParameters", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{HTML: HTMLConfig{CompletePage: true, Title: "T", CSS: "c.css"}}
		params := cfg.RendererParameters()
		assert.NotZero(t, params.Flags&markdown.CompletePage)
		assert.Equal(t, "T", params.Title)
		assert.Equal(t, "c.css", params.CSS)
	})
}

func TestValidExtensionNames(t *testing.T) {
	t.Parallel()
	names := ValidExtensionNames()
	assert.Contains(t, names, "tables")
	assert.Contains(t, names, "lax-spacing")
	assert.IsIncreasing(t, names)
}
