// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prefy/internal/catalog"
	"github.com/pdiddy/prefy/internal/convert"
	"github.com/pdiddy/prefy/pkg/types"
)

var errNoInput = errors.New("no input file given")

var convertCmd = &cobra.Command{
	Use:   "convert <file.prefy> [more.prefy...]",
	Short: "Convert .prefy files to templates",
	Long: `Convert parses each .prefy file and writes a template beside it, replacing
the extension with .json (or .yaml with --format yaml). Invalid lines are
reported and skipped; the rest of the file is still converted.

Running prefy with file arguments and no subcommand does the same thing.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: prefy <filename.prefy>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example .prefy format:")
	fmt.Fprintln(w, "  Social Activities (Interest, Frequency): Movies, Concerts, Museums")
	fmt.Fprintln(w, "  Food Preferences (Like, Dislike): Italian, Japanese, Mexican")
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		printUsage(out)
		return errNoInput
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Convert.Format == "" {
		cfg.Convert.Format = types.FormatJSON
	}
	if !cfg.Convert.Format.Valid() {
		return fmt.Errorf("unsupported format %q: use json or yaml", cfg.Convert.Format)
	}
	if cfg.Convert.Output != "" && len(args) > 1 {
		return fmt.Errorf("--output can only be used with a single input file")
	}

	var results []convert.Result
	if len(args) == 1 {
		res, err := convert.ConvertFile(args[0], cfg.Convert, out)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		batch := convert.ConvertPaths(args, cfg.Convert, out)
		results = batch.Results
		if batch.HasFailures() {
			if err := catalogResults(cmd, cfg.Catalog, results); err != nil {
				return err
			}
			return fmt.Errorf("%d file(s) failed conversion", batch.Failed)
		}
	}

	return catalogResults(cmd, cfg.Catalog, results)
}

// catalogResults records results when --catalog is set.
func catalogResults(cmd *cobra.Command, cfg types.CatalogConfig, results []convert.Result) error {
	enabled, _ := cmd.Flags().GetBool("catalog")
	if !enabled || len(results) == 0 {
		return nil
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for _, res := range results {
		source, err := filepath.Abs(res.Output)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", res.Output, err)
		}
		name := templateName(res.Output)
		if _, err := store.Add(cmd.Context(), name, source, res.Template); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cataloged %s (%d entries)\n", name, res.Entries())
	}
	return nil
}

// templateName is the file name without directory or extension.
func templateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
