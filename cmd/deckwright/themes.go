package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avelinec/deckwright/internal/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in theme presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tBACKGROUND\tTEXT\tACCENT")
			for _, key := range theme.Keys() {
				t := theme.Preset(key)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, t.BackgroundColor, t.TextColor, t.AccentColor)
			}
			return w.Flush()
		},
	}
}
