// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prefy/internal/palette"
	"github.com/pdiddy/prefy/internal/template"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <template>",
	Short: "Check a generated template and summarize it",
	Long: `Inspect loads a JSON or YAML template, checks it against the template
schema, and prints its categories and entry counts. Schema problems are
listed one per path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := template.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: valid template\n", args[0])
		template.Summarize(tmpl).Write(out, tmpl)

		if showLevels, _ := cmd.Flags().GetBool("levels"); showLevels {
			fmt.Fprintln(out)
			return palette.Render(out, tmpl.Levels)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("levels", false, "also show the template's level palette")
	rootCmd.AddCommand(inspectCmd)
}
