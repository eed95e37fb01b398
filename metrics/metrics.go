package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gltut_frames_rendered_total",
		Help: "Total number of frames swapped to the window",
	})
	FramesPerSecond = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gltut_frames_per_second",
		Help: "Frames rendered during the last full second",
	})
	ShaderBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltut_shader_builds_total",
		Help: "Total number of shader program builds by result",
	}, []string{"result"})
)

// ShaderBuilt records the outcome of a shader compile-and-link.
func ShaderBuilt(err error) {
	if err != nil {
		ShaderBuilds.WithLabelValues("failed").Inc()
		return
	}
	ShaderBuilds.WithLabelValues("ok").Inc()
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes Handler at /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
