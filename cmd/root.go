// Package cmd provides the command-line interface for weft with
// configuration management supporting multiple sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration with clear precedence:
//	1. Command-line flags (--out, --style-format, etc.) - highest priority
//	2. WEFT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (WEFT_OUTPUT_DIR, etc.)
//	4. Configuration files (.weft.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weft-dev/weft/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Render JSON template trees into markup, components, and styles",
	Long: `Weft converts abstract, JSON-serializable template trees into textual
output: plain markup, framework component source (React, Vue, Svelte), and
stylesheet text, through an ordered extension pipeline.

Quick Start:
  weft init                        Scaffold a sample template and config
  weft render page.json            Render a template to markup
  weft render page.json -e bem     Render with the bem extension
  weft watch page.json             Re-render whenever the template changes
  weft extensions                  List available extensions`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .weft.yml, can also use WEFT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system. Priority, highest first:
// the --config flag, the WEFT_CONFIG_FILE environment variable, then a
// .weft.yml in the current directory.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("WEFT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".weft")
	}

	viper.SetEnvPrefix("WEFT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file falls back to defaults; explicit
	// validation happens when commands load the config.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the command logger honoring --verbose and --log-level.
func newLogger() logging.Logger {
	level := logging.ParseLevel(viper.GetString("log-level"))
	if verbose {
		level = logging.LevelDebug
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: "text",
		Output: os.Stderr,
	})
}
