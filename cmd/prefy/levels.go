// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/prefy/internal/palette"
	"github.com/pdiddy/prefy/pkg/types"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the preference levels written into every template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return palette.Render(cmd.OutOrStdout(), types.DefaultLevels())
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}
