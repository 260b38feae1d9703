// Package httpapi serves the REST contract of the development backend with
// gin. Every route lives under /api and errors are returned as
// {"detail": ...} bodies.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/buildinfo"
	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server/chat"
	"github.com/dmitrijs2005/doubtsolver/internal/server/doubts"
	"github.com/dmitrijs2005/doubtsolver/internal/server/users"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	router  *gin.Engine
	users   *users.Service
	doubts  *doubts.Service
	chat    *chat.Service
	logger  logging.Logger
}

func NewServer(addr string, l logging.Logger, us *users.Service, ds *doubts.Service, cs *chat.Service) *Server {
	s := &Server{
		address: addr,
		router:  gin.New(),
		users:   us,
		doubts:  ds,
		chat:    cs,
		logger:  l.With("module", "http_server"),
	}
	// multipart bodies above this size spill to temp files
	s.router.MaxMultipartMemory = common.MaxImageSize + 1<<20
	s.router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group(common.APIPrefix)
	api.GET("/", s.handleRoot)

	a := api.Group("/auth")
	a.POST("/register", s.handleRegister)
	a.POST("/login", s.handleLogin)
	a.GET("/me", s.authMiddleware(), s.handleMe)
	a.POST("/logout", s.authMiddleware(), s.handleLogout)

	q := api.Group("/questions", s.authMiddleware())
	q.POST("/text", s.handleTextQuestion)
	q.POST("/image", s.handleImageQuestion)
	q.GET("/user/:id", s.handleUserQuestions)

	d := api.Group("/doubts", s.authMiddleware())
	d.GET("/", s.handleListDoubts)
	d.GET("/:id", s.handleGetDoubt)
	d.DELETE("/:id", s.handleDeleteDoubt)

	c := api.Group("/chat", s.authMiddleware())
	c.POST("/send", s.handleChatSend)
	c.GET("/messages", s.handleChatMessages)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "DoubtSolver API is running",
		"version": buildinfo.Version,
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
