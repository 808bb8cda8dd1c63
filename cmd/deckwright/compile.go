package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelinec/deckwright/internal/compile"
	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/theme"
	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

func newCompileCmd(root *rootFlags) *cobra.Command {
	var datestamp string

	cmd := &cobra.Command{
		Use:   "compile [deck.json]",
		Short: "Compile a deck JSON file into a render-operation stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			d, err := readDeck(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			generatedAt := time.Now()
			if datestamp != "" {
				generatedAt, err = time.Parse("2006-01-02", datestamp)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
			}

			ops := compile.New(app.cfg.Page.Geometry()).Compile(d, generatedAt)
			out, err := json.MarshalIndent(ops, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&datestamp, "date", "", "Title-page date (YYYY-MM-DD, default today)")

	return cmd
}

// readDeck loads deck JSON from a file or, for "-", from stdin.
func readDeck(stdin io.Reader, path string) (deck.Deck, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return deck.Deck{}, err
	}

	var d deck.Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return deck.Deck{}, deckerrors.NewParseError(path, 0, err)
	}
	d.Normalize(path, theme.Preset(""))
	if len(d.Slides) == 0 {
		return deck.Deck{}, deckerrors.NewValidationError("slides", "deck has no slides", nil)
	}
	return d, nil
}
