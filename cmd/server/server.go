package server

import (
	"context"
	"net/http"
	"time"

	"example.com/feedcore/internal/logger"
	"example.com/feedcore/internal/middleware"
	"example.com/feedcore/internal/store"
)

type Server struct {
	store    store.PostStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

type Options struct {
	Addr        string
	JWTSecret   string
	TokenTTL    time.Duration
	TLSCertFile string
	TLSKeyFile  string
}

var logg = logger.New()

func New(st store.PostStore, opts Options) *Server {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		store:    st,
		secret:   []byte(opts.JWTSecret),
		tokenTTL: ttl,
		now:      time.Now,
	}
}

// Routes wires the public and JWT-protected endpoints.
func (s *Server) Routes() http.Handler {
	auth := middleware.JWTAuth(s.secret)

	mux := http.NewServeMux()
	mux.Handle("GET /posts", auth(http.HandlerFunc(s.listPostsHandler)))
	mux.Handle("POST /posts", auth(http.HandlerFunc(s.createPostHandler)))
	mux.Handle("POST /users", http.HandlerFunc(s.createUserHandler))
	return mux
}

// Run serves until ctx is done, then shuts down gracefully. TLS is used
// when both certificate files are configured.
func Run(ctx context.Context, st store.PostStore, opts Options) {
	s := New(st, opts)

	srv := &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second, // prevent slowloris attacks
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if opts.TLSCertFile != "" && opts.TLSKeyFile != "" {
			logg.Info("server", "Starting HTTPS server on "+opts.Addr)
			err = srv.ListenAndServeTLS(opts.TLSCertFile, opts.TLSKeyFile)
		} else {
			logg.Info("server", "Starting HTTP server on "+opts.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logg.Error("server", "Server stopped unexpectedly", err)
		}
	}()

	<-ctx.Done()
	logg.Info("server", "Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server", "Error during server shutdown", err)
	} else {
		logg.Info("server", "Server stopped gracefully")
	}
}
