package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BielosX/wombat/pokedex/src/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the JSON API until ctx is cancelled.
func Serve(ctx context.Context, addr string, catalog *usecase.Catalog, sugar *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(catalog, sugar),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sugar.Infof("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
