package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avelinec/deckwright/internal/compile"
	"github.com/avelinec/deckwright/internal/deck"
	"github.com/avelinec/deckwright/internal/extract"
	"github.com/avelinec/deckwright/internal/genai"
	"github.com/avelinec/deckwright/internal/store"
	"github.com/avelinec/deckwright/internal/theme"
	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

type generateRequest struct {
	SourceText string `json:"sourceText"`
	SourceName string `json:"sourceName"`
	NumSlides  int    `json:"numSlides"`
	ThemeKey   string `json:"themeKey"`
}

type deckResponse struct {
	OK      bool      `json:"ok"`
	ID      string    `json:"id,omitempty"`
	Deck    deck.Deck `json:"deck"`
	Message string    `json:"message,omitempty"`
	Changed bool      `json:"changed,omitempty"`
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.SourceText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sourceText is required")
	}
	if req.NumSlides <= 0 {
		req.NumSlides = 8
	}
	if req.ThemeKey == "" {
		req.ThemeKey = s.themeKey
	}

	ctx := c.Request().Context()
	prompt := genai.BuildDeckPrompt(req.SourceText, req.SourceName, req.NumSlides, req.ThemeKey)
	reply, backendID, err := s.chain.Complete(ctx, prompt)
	if err != nil {
		return pipelineHTTPError(err)
	}

	d, err := s.pipeline.Deck(ctx, reply, backendID, extract.Options{
		FallbackTitle: req.SourceName,
		DefaultTheme:  theme.Preset(req.ThemeKey),
	})
	if err != nil {
		return pipelineHTTPError(err)
	}

	rec, err := s.store.Save(d)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, deckResponse{OK: true, ID: rec.ID, Deck: rec.Deck})
}

func (s *Server) handleListDecks(c echo.Context) error {
	list, err := s.store.List()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, struct {
		OK    bool            `json:"ok"`
		Decks []store.Summary `json:"decks"`
	}{OK: true, Decks: list})
}

func (s *Server) handleGetDeck(c echo.Context) error {
	rec, err := s.store.Get(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "deck not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deckResponse{OK: true, ID: rec.ID, Deck: rec.Deck})
}

func (s *Server) handleDeleteDeck(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "deck not found")
		}
		return err
	}
	s.dropSession(id)
	return c.JSON(http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleCommand(c echo.Context) error {
	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Command) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "command is required")
	}

	id := c.Param("id")
	ds, err := s.sessionFor(id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "deck not found")
	}
	if err != nil {
		return err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	res := ds.session.Apply(req.Command)
	if res.Changed {
		if _, err := s.store.Update(id, res.Deck); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, deckResponse{
		OK:      true,
		ID:      id,
		Deck:    res.Deck,
		Message: res.Message,
		Changed: res.Changed,
	})
}

func (s *Server) handleOps(c echo.Context) error {
	rec, err := s.store.Get(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "deck not found")
	}
	if err != nil {
		return err
	}

	ops := s.compiler.Compile(rec.Deck, s.clock())
	return c.JSON(http.StatusOK, struct {
		OK  bool         `json:"ok"`
		Ops []compile.Op `json:"ops"`
	}{OK: true, Ops: ops})
}

type themeEntry struct {
	Key   string     `json:"key"`
	Theme deck.Theme `json:"theme"`
}

func (s *Server) handleThemes(c echo.Context) error {
	keys := theme.Keys()
	entries := make([]themeEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, themeEntry{Key: key, Theme: theme.Preset(key)})
	}
	return c.JSON(http.StatusOK, struct {
		OK     bool         `json:"ok"`
		Themes []themeEntry `json:"themes"`
	}{OK: true, Themes: entries})
}

// pipelineHTTPError maps pipeline failures onto HTTP statuses: upstream
// exhaustion is a gateway problem, an unusable reply is a bad upstream
// payload.
func pipelineHTTPError(err error) error {
	var unavailable *deckerrors.BackendUnavailableError
	if errors.As(err, &unavailable) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	var unparsable *deckerrors.UnparsableError
	var schema *deckerrors.SchemaError
	var empty *deckerrors.EmptyInputError
	if errors.As(err, &unparsable) || errors.As(err, &schema) || errors.As(err, &empty) {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return err
}
