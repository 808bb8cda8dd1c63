package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelinec/deckwright/internal/extract"
	"github.com/avelinec/deckwright/internal/genai"
	"github.com/avelinec/deckwright/internal/store"
	"github.com/avelinec/deckwright/internal/theme"
)

type generateOptions struct {
	InputPath string
	ReplyPath string
	Name      string
	Slides    int
	Theme     string
	Save      bool
	Timeout   time.Duration
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a deck from source text and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}
			return runGenerate(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Path to the source text file")
	cmd.Flags().StringVar(&opts.ReplyPath, "reply", "", "Path to a captured model reply to extract instead of calling a backend")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Source name used as the fallback deck title")
	cmd.Flags().IntVar(&opts.Slides, "slides", 8, "Requested number of content slides")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Theme preset key")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Persist the generated deck to the store")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Per-generation timeout")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *appContext, opts generateOptions) error {
	if opts.InputPath == "" && opts.ReplyPath == "" {
		return fmt.Errorf("either --input or --reply is required")
	}
	themeKey := opts.Theme
	if themeKey == "" {
		themeKey = app.cfg.Theme
	}
	fallbackTitle := opts.Name
	if fallbackTitle == "" && opts.InputPath != "" {
		fallbackTitle = opts.InputPath
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	chain := genai.NewChain(app.log, genai.BackendsFor(app.cfg.Backends)...)
	pipeline := extract.New(chain, app.log)

	var reply, backendID string
	if opts.ReplyPath != "" {
		data, err := os.ReadFile(opts.ReplyPath)
		if err != nil {
			return err
		}
		reply, backendID = string(data), "reply-file"
	} else {
		source, err := os.ReadFile(opts.InputPath)
		if err != nil {
			return err
		}
		prompt := genai.BuildDeckPrompt(string(source), fallbackTitle, opts.Slides, themeKey)
		reply, backendID, err = chain.Complete(ctx, prompt)
		if err != nil {
			return err
		}
	}

	d, err := pipeline.Deck(ctx, reply, backendID, extract.Options{
		FallbackTitle: strings.TrimSpace(fallbackTitle),
		DefaultTheme:  theme.Preset(themeKey),
	})
	if err != nil {
		return err
	}

	if opts.Save {
		st, err := store.New(app.cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		rec, err := st.Save(d)
		if err != nil {
			return err
		}
		app.log.WithFields(map[string]any{"id": rec.ID}).Info("deck saved")
	}

	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
