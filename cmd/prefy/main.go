// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the prefy CLI, which converts .prefy
// files into JSON preference templates.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/prefy/internal/logging"
	"github.com/pdiddy/prefy/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the files named on the command line. Subcommands cover
// the palette, the bundled example, inspection, and the catalog.
var rootCmd = &cobra.Command{
	Use:   "prefy <file.prefy> [more.prefy...]",
	Short: "Convert .prefy files into JSON preference templates",
	Long: `prefy converts .prefy files into JSON templates for the preference list app.

Each line of a .prefy file describes one category:

  Category Name (Property 1, Property 2): Entry 1, Entry 2, Entry 3

Blank lines and lines starting with # are ignored. The template is written
next to the input with a .json extension.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Setup(os.Stderr, cfg.Log)
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./prefy.yaml or ~/.config/prefy/prefy.yaml)")
	pf.String("log-level", "warn", "stderr log level: debug, info, warn, or error")
	pf.String("log-format", "text", "stderr log format: text, json, or logfmt")
	pf.String("format", "json", "output format: json or yaml")
	pf.String("title", "", "export title written into the template")
	pf.StringP("output", "o", "", "output path (single input only)")
	pf.Bool("catalog", false, "record converted templates in the catalog")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("convert.format", pf.Lookup("format"))
	mustBind("convert.title", pf.Lookup("title"))
	mustBind("convert.output", pf.Lookup("output"))

	viper.SetDefault("catalog.driver", string(types.DriverSQLite))
	viper.SetDefault("catalog.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("prefy")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "prefy"))
		}
	}

	viper.SetEnvPrefix("PREFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, environment, and flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
