package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/types"
)

func TestLoadAppliesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "css", cfg.Styles.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadReadsViperValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("output.dir", "dist")
	viper.Set("output.base_name", "page")
	viper.Set("render.extensions", []string{"bem", "react"})
	viper.Set("render.file_extension", ".jsx")
	viper.Set("styles.format", "scss")
	viper.Set("styles.minify", true)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.Equal(t, "page", cfg.Output.BaseName)
	assert.Equal(t, []string{"bem", "react"}, cfg.Render.Extensions)
	assert.Equal(t, ".jsx", cfg.Render.FileExtension)
	assert.Equal(t, "scss", cfg.Styles.Format)
	assert.True(t, cfg.Styles.Minify)
}

func TestLoadRejectsBadStyleFormat(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("styles.format", "less")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsNegativeDebounce(t *testing.T) {
	cfg := &Config{
		Styles: StylesConfig{Format: "css"},
		Watch:  WatchConfig{Debounce: -time.Second},
	}
	assert.Error(t, cfg.Validate())
}

func TestRenderOptionsConversion(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{Dir: "dist"},
		Render: RenderConfig{
			Extensions:        []string{"bem"},
			Formatter:         "html",
			PreferSelfClosing: true,
		},
		Styles: StylesConfig{Format: "scss", Minify: true},
	}

	opts := cfg.RenderOptions("landing")
	assert.Equal(t, "landing", opts.FileName)
	assert.Equal(t, "dist", opts.OutputDir)
	assert.Equal(t, []string{"bem"}, opts.Extensions)
	assert.Equal(t, "html", opts.Formatter)
	assert.True(t, opts.PreferSelfClosing)
	assert.Equal(t, types.StyleSCSS, opts.Styles.OutputFormat)
	assert.True(t, opts.Styles.Minify)
	assert.True(t, opts.Write)

	cfg.Output.BaseName = "page"
	assert.Equal(t, "page", cfg.RenderOptions("landing").FileName)
}
