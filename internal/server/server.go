// Package server exposes the deck pipeline over HTTP. All endpoints speak
// JSON; failures use a uniform {ok:false, error} envelope so clients never
// have to sniff response shapes.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelinec/deckwright/internal/compile"
	"github.com/avelinec/deckwright/internal/extract"
	"github.com/avelinec/deckwright/internal/genai"
	"github.com/avelinec/deckwright/internal/interp"
	"github.com/avelinec/deckwright/internal/logger"
	"github.com/avelinec/deckwright/internal/store"
)

// Server wires the pipeline, the store and per-deck editing sessions behind
// an echo router.
type Server struct {
	echo     *echo.Echo
	chain    *genai.Chain
	pipeline *extract.Pipeline
	compiler *compile.Compiler
	store    *store.Store
	themeKey string
	log      *logger.Logger
	clock    func() time.Time

	mu       sync.Mutex
	sessions map[string]*deckSession
}

// deckSession serializes edits to one deck. Commands against the same deck
// queue on the session lock; different decks edit concurrently.
type deckSession struct {
	mu      sync.Mutex
	session *interp.Session
}

// Options carries the server's collaborators.
type Options struct {
	Chain    *genai.Chain
	Pipeline *extract.Pipeline
	Compiler *compile.Compiler
	Store    *store.Store
	ThemeKey string
	Log      *logger.Logger

	// Clock feeds the compiler's title-page date; tests pin it.
	Clock func() time.Time
}

// New builds a fully routed server.
func New(opts Options) *Server {
	s := &Server{
		echo:     echo.New(),
		chain:    opts.Chain,
		pipeline: opts.Pipeline,
		compiler: opts.Compiler,
		store:    opts.Store,
		themeKey: opts.ThemeKey,
		log:      opts.Log,
		clock:    opts.Clock,
		sessions: make(map[string]*deckSession),
	}
	if s.clock == nil {
		s.clock = time.Now
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.WithFields(map[string]any{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Info("request")
			return nil
		},
	}))

	api := e.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.GET("/decks", s.handleListDecks)
	api.GET("/decks/:id", s.handleGetDeck)
	api.DELETE("/decks/:id", s.handleDeleteDeck)
	api.POST("/decks/:id/command", s.handleCommand)
	api.GET("/decks/:id/ops", s.handleOps)
	api.GET("/themes", s.handleThemes)

	return s
}

// Start blocks serving on addr until the listener fails or is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// sessionFor returns the editing session for a deck, creating it from the
// stored deck on first use.
func (s *Server) sessionFor(id string) (*deckSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ds, ok := s.sessions[id]; ok {
		return ds, nil
	}
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	ds := &deckSession{session: interp.NewSession(rec.Deck, s.log)}
	s.sessions[id] = ds
	return ds, nil
}

// dropSession discards a deck's editing state, including its undo history.
func (s *Server) dropSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if status >= http.StatusInternalServerError {
		s.log.Error(err, "request failed")
	}

	_ = c.JSON(status, errorEnvelope{OK: false, Error: msg})
}

type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
