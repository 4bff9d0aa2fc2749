// Package api exposes the character search over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imdb_search_go/internal/store"
)

// CharacterFinder is the query the search endpoint depends on.
type CharacterFinder interface {
	CharactersByActor(ctx context.Context, name string) ([]store.CharacterCredit, error)
}

// Pinger reports whether the store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tunes the router.
type Options struct {
	// QueryTimeout bounds each search; zero leaves the request context as is.
	QueryTimeout time.Duration
	Logger       *log.Logger
}

// Server holds the dependencies shared by the handlers. It carries no
// connection state of its own; every request checks a connection out of the
// pool behind finder.
type Server struct {
	router *gin.Engine
	finder CharacterFinder
	pinger Pinger
	opts   Options
	logger *log.Logger
}

// NewServer builds the router and registers all routes.
func NewServer(finder CharacterFinder, pinger Pinger, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(RequestID())

	s := &Server{
		router: router,
		finder: finder,
		pinger: pinger,
		opts:   opts,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/search", s.handleSearch)

	s.router.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
	s.router.GET("/swagger", serveSwaggerUI)
}

// handleSearch answers GET /search?actor=<name> with a JSON object mapping
// each title to the characters played, or "N/A".
func (s *Server) handleSearch(c *gin.Context) {
	actor, ok := c.GetQuery("actor")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor query param is required"})
		return
	}
	s.logger.Printf("[%s] search actor=%q", requestIDFrom(c), actor)

	ctx := c.Request.Context()
	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	credits, err := s.finder.CharactersByActor(ctx, actor)
	if err != nil {
		s.logger.Printf("[%s] search actor=%q error: %v", requestIDFrom(c), actor, err)
		if errors.Is(err, store.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, store.MergeByTitle(credits))
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		s.logger.Printf("[%s] health ping error: %v", requestIDFrom(c), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
