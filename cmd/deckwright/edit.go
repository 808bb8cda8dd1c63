package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avelinec/deckwright/internal/editor"
)

func newEditCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <deck.json>",
		Short: "Edit a deck interactively with natural-language commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("edit needs an interactive terminal")
			}

			path := args[0]
			d, err := readDeck(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			program := tea.NewProgram(editor.NewModel(d, app.log))
			final, err := program.Run()
			if err != nil {
				return err
			}

			edited := final.(editor.Model).Deck()
			out, err := json.MarshalIndent(edited, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
				return err
			}
			app.log.WithFields(map[string]any{"path": path}).Info("deck written")
			return nil
		},
	}

	return cmd
}
