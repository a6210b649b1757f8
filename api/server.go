package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/jobmesh/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func CreateRouter(cluster Cluster) *chi.Mux {
	r := chi.NewRouter()
	newNodesAPI(cluster).Bind(r)
	r.Handle("/metrics", telemetry.MetricsHandler())

	return r
}

// StartServer serves the API until the context is cancelled.
func StartServer(ctx context.Context, cluster Cluster, logger kitlog.Logger, bindAddr string) error {
	server := &http.Server{
		Addr:    bindAddr,
		Handler: CreateRouter(cluster),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown server", "err", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
