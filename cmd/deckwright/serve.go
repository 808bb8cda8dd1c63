package main

import (
	"github.com/spf13/cobra"

	"github.com/avelinec/deckwright/internal/compile"
	"github.com/avelinec/deckwright/internal/extract"
	"github.com/avelinec/deckwright/internal/genai"
	"github.com/avelinec/deckwright/internal/server"
	"github.com/avelinec/deckwright/internal/store"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the deck HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			st, err := store.New(app.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			chain := genai.NewChain(app.log, genai.BackendsFor(app.cfg.Backends)...)
			srv := server.New(server.Options{
				Chain:    chain,
				Pipeline: extract.New(chain, app.log),
				Compiler: compile.New(app.cfg.Page.Geometry()),
				Store:    st,
				ThemeKey: app.cfg.Theme,
				Log:      app.log,
			})

			addr := listen
			if addr == "" {
				addr = app.cfg.Server.Listen
			}
			app.log.WithFields(map[string]any{"addr": addr}).Info("serving")
			return srv.Start(addr)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides configuration)")

	return cmd
}
