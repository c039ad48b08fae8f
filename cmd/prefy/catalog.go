// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prefy/internal/catalog"
	"github.com/pdiddy/prefy/internal/template"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index generated templates and search their entries",
	Long: `Catalog keeps an SQL index of generated templates. SQLite is used by default
(~/.config/prefy/catalog.db); set --driver postgres and --dsn to share a
catalog. Templates are keyed by absolute path, so adding a file again
replaces its earlier record.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <template> [more...]",
	Short: "Add generated templates to the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		for _, path := range args {
			tmpl, err := template.Load(path)
			if err != nil {
				return err
			}
			source, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}
			rec, err := store.Add(cmd.Context(), templateName(path), source, tmpl)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cataloged %s (%d categories, %d entries)\n", rec.Name, rec.Categories, rec.Entries)
		}
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if records == nil {
				records = []catalog.Record{}
			}
			return writeJSON(out, records)
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "Catalog is empty.")
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "%-24s %3d categories %4d entries  %s\n", r.Name, r.Categories, r.Entries, r.Source)
		}
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search entries across cataloged templates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		matches, err := store.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if matches == nil {
				matches = []catalog.Match{}
			}
			return writeJSON(out, matches)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%s > %s > %s  [%s]\n", m.Template, m.Category, m.Entry, m.EntryID)
		}
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <template>",
	Short: "Remove a template from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		source, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		removed, err := store.Remove(cmd.Context(), source)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("%s is not in the catalog", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

func init() {
	pf := catalogCmd.PersistentFlags()
	pf.String("driver", "", "catalog driver: sqlite3 or postgres")
	pf.String("dsn", "", "catalog data source (sqlite file path or postgres URL)")
	mustBind("catalog.driver", pf.Lookup("driver"))
	mustBind("catalog.dsn", pf.Lookup("dsn"))

	catalogListCmd.Flags().Bool("json", false, "output records as JSON")
	catalogSearchCmd.Flags().Bool("json", false, "output matches as JSON")

	catalogCmd.AddCommand(catalogAddCmd, catalogListCmd, catalogSearchCmd, catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Catalog)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
