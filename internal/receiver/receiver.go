// Package receiver implements the HTTP endpoint li's webhook channel posts to.
// Each accepted message is printed and, optionally, shown as a desktop
// notification on the receiving machine.
package receiver

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cli-notifier/li/internal/logger"
	"github.com/cli-notifier/li/internal/notify"
	"github.com/gin-gonic/gin"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = ":8000"

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Secret is the bearer token senders must present. Required.
	Secret string
	// Out receives one "Received webhook payload: ..." line per message.
	Out io.Writer
	// Display shows each message locally. Nil disables it.
	Display notify.Channel
}

// Server accepts webhook messages over HTTP.
type Server struct {
	secret  string
	display notify.Channel

	mu  sync.Mutex
	out io.Writer

	httpSrv *http.Server
}

// webhookRequest is the body li's webhook channel sends.
type webhookRequest struct {
	Text string `json:"text" binding:"required"`
}

// New creates a Server. It does not listen until Serve is called.
func New(opts Options) *Server {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	s := &Server{
		secret:  opts.Secret,
		display: opts.Display,
		out:     out,
	}
	s.httpSrv = &http.Server{
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Logger().Handler(), slog.LevelError),
	}
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/webhook", s.requireBearer, s.handleWebhook)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// requireBearer rejects requests whose Authorization header does not carry
// the configured secret.
func (s *Server) requireBearer(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		logger.Warn("rejected webhook", "remote", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) handleWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object with a text field"})
		return
	}

	logger.Info("received webhook payload", "text", req.Text)
	s.mu.Lock()
	fmt.Fprintf(s.out, "Received webhook payload: %s\n", req.Text)
	s.mu.Unlock()

	if s.display != nil {
		if err := s.display.Send(c.Request.Context(), req.Text); err != nil {
			logger.Error("failed to display notification", "channel", s.display.Name(), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Debug("shutting down receiver")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
