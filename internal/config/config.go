// Package config provides configuration management for the weft CLI using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Configuration is read from .weft.yml with environment overrides under the
// WEFT_ prefix (WEFT_OUTPUT_DIR, WEFT_STYLES_FORMAT, and so on); flags bound
// by the command layer take final precedence.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/weft-dev/weft/internal/types"
)

type Config struct {
	Output   OutputConfig `yaml:"output"`
	Render   RenderConfig `yaml:"render"`
	Styles   StylesConfig `yaml:"styles"`
	Watch    WatchConfig  `yaml:"watch"`
	LogLevel string       `yaml:"log_level"`
}

type OutputConfig struct {
	// Dir is the directory artifacts are written into.
	Dir string `yaml:"dir"`
	// BaseName names output artifacts when the command line does not.
	BaseName string `yaml:"base_name"`
}

type RenderConfig struct {
	// Extensions lists the active extensions in application order.
	Extensions []string `yaml:"extensions"`
	// FileExtension overrides the markup artifact extension.
	FileExtension string `yaml:"file_extension"`
	// Formatter names the formatter syntax applied to final markup.
	Formatter string `yaml:"formatter"`
	// PreferSelfClosing self-closes every childless element.
	PreferSelfClosing bool `yaml:"prefer_self_closing"`
}

type StylesConfig struct {
	Format    string `yaml:"format"`
	Minify    bool   `yaml:"minify"`
	SourceMap bool   `yaml:"source_map"`
}

type WatchConfig struct {
	// Debounce groups rapid file changes into one re-render.
	Debounce time.Duration `yaml:"debounce"`
	// Patterns lists glob patterns of additional files to watch.
	Patterns []string `yaml:"patterns"`
}

// Load builds the configuration from viper's merged sources and applies
// defaults.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Workarounds for viper slice/bool handling when values come from the
	// environment rather than the config file.
	if viper.IsSet("render.extensions") && len(config.Render.Extensions) == 0 {
		config.Render.Extensions = viper.GetStringSlice("render.extensions")
	}
	if viper.IsSet("styles.minify") {
		config.Styles.Minify = viper.GetBool("styles.minify")
	}
	if viper.IsSet("render.prefer_self_closing") {
		config.Render.PreferSelfClosing = viper.GetBool("render.prefer_self_closing")
	}
	if viper.IsSet("output.base_name") && config.Output.BaseName == "" {
		config.Output.BaseName = viper.GetString("output.base_name")
	}
	if viper.IsSet("render.file_extension") && config.Render.FileExtension == "" {
		config.Render.FileExtension = viper.GetString("render.file_extension")
	}
	if viper.IsSet("styles.source_map") {
		config.Styles.SourceMap = viper.GetBool("styles.source_map")
	}
	if viper.IsSet("log_level") && config.LogLevel == "" {
		config.LogLevel = viper.GetString("log_level")
	}

	if config.Output.Dir == "" {
		config.Output.Dir = "."
	}
	if config.Styles.Format == "" {
		config.Styles.Format = string(types.StyleCSS)
	}
	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = 300 * time.Millisecond
	}
	if config.LogLevel == "" {
		config.LogLevel = viper.GetString("log-level")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the render core cannot honor.
func (c *Config) Validate() error {
	if !types.StyleFormat(c.Styles.Format).Valid() {
		return fmt.Errorf("styles.format must be inline, css, or scss (got %q)", c.Styles.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// RenderOptions converts the configuration into caller options for one
// render pass. sourceName seeds the artifact base name when the config does
// not set one.
func (c *Config) RenderOptions(sourceName string) *types.RenderOptions {
	name := c.Output.BaseName
	if name == "" {
		name = sourceName
	}
	return &types.RenderOptions{
		FileName:          name,
		OutputDir:         c.Output.Dir,
		FileExtension:     c.Render.FileExtension,
		Extensions:        c.Render.Extensions,
		Formatter:         c.Render.Formatter,
		PreferSelfClosing: c.Render.PreferSelfClosing,
		Styles: types.StyleOptions{
			OutputFormat: types.StyleFormat(c.Styles.Format),
			Minify:       c.Styles.Minify,
			SourceMap:    c.Styles.SourceMap,
		},
		Write: true,
	}
}
