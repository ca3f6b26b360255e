package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, flags *AppFlags) error {
	cfg, zLogger, err := loadConfig(cmd, flags, validateServeConfig)
	if err != nil {
		return err
	}

	addr := cfg.ArtifactConfig.ServeAddr
	if addr == "" {
		addr = config.DefaultArtifactServeAddr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           newArtifactRouter(cfg.ArtifactConfig.Dir, zLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zLogger.Info().Str("addr", addr).Str("dir", cfg.ArtifactConfig.Dir).Msg("Serving diffs")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return common.WrapError(err, "artifact server failed")
	case <-cmd.Context().Done():
		zLogger.Info().Msg("Shutting down artifact server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func validateServeConfig(cfg *config.GlobalConfig) error {
	if cfg.ArtifactConfig.Dir == "" {
		return common.NewConfigurationError("artifact_config", "dir", "a diff directory is required to serve diffs (use --diff-target)")
	}
	return nil
}

// newArtifactRouter serves the files in dir read-only, plus a health endpoint.
func newArtifactRouter(dir string, logger zerolog.Logger) http.Handler {
	serverLogger := logger.With().Str("component", "ArtifactServer").Logger()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(serverLogger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	files := http.StripPrefix("/", http.FileServer(noDirListing{http.Dir(dir)}))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, req)
	})
	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("Request served")
		})
	}
}

// noDirListing hides directory indexes so diff names cannot be enumerated.
type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
