package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"CryptoAnalyst/internal/model"
	"CryptoAnalyst/internal/recorder"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 10 * time.Second

// Analyzer produces reports and exposes recorded history.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Report, error)
	History(symbol string, limit int) ([]recorder.Snapshot, error)
}

// Server serves the dashboard, the JSON API and the static client.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	svc             Analyzer
	engine          *gin.Engine
}

// New builds the router. A non-positive shutdownTimeout uses 10s.
func New(addr string, shutdownTimeout time.Duration, svc Analyzer) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetTrustedProxies(nil)
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	s := &Server{addr: addr, shutdownTimeout: shutdownTimeout, svc: svc, engine: r}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
	})
	r.GET("/static/*filepath", serveStatic)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/analysis/:symbol", s.getAnalysis)
		api.GET("/chart/:symbol", s.getChart)
		api.GET("/history/:symbol", s.getHistory)
	}

	r.GET("/dashboard", s.searchDashboard)
	r.GET("/dashboard/:symbol", s.getDashboard)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] HTTP server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[INFO] shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
