// Package status serves a read-only view of the runtime state over HTTP.
package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Snapshotter is the only view of the runtime state this server needs.
type Snapshotter interface {
	Samples() []uint64
}

// NewRouter builds the status routes:
//
//	GET /        liveness marker
//	GET /ping    latency sample snapshot
//	GET /metrics Prometheus exposition
func NewRouter(src Snapshotter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"alive": true})
	})
	r.GET("/ping", func(c *gin.Context) {
		samples := src.Samples()
		if samples == nil {
			samples = []uint64{}
		}
		c.JSON(http.StatusOK, gin.H{"latency_ms": samples})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Run serves the status routes on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, src Snapshotter) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(src),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down status server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	log.Info().Str("addr", addr).Msg("Status server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
