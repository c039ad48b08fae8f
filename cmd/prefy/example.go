// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

//go:embed example.prefy
var examplePrefy []byte

const defaultExamplePath = "example.prefy"

var exampleCmd = &cobra.Command{
	Use:   "example [path]",
	Short: "Write a sample .prefy file to start from",
	Long: `Example writes a sample .prefy file (example.prefy by default). An existing
file is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultExamplePath
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		return writeExample(cmd, path, force)
	},
}

func init() {
	exampleCmd.Flags().Bool("force", false, "overwrite an existing file")
	rootCmd.AddCommand(exampleCmd)
}

func writeExample(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, examplePrefy, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Convert it with: prefy %s\n", path)
	return nil
}
