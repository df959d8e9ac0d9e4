// internal/app/features/metrics/handler.go
package metrics

import (
	wafflemetrics "github.com/dalemusser/waffle/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raiden-network/scenario-services/internal/app/factory"
	"go.uber.org/zap"
)

const namespace = "scenario_services"

// Handler serves Prometheus metrics for one application instance.
//
// Process-wide collectors (Go runtime, process, and the
// http_request_duration_seconds histogram fed by wafflemetrics.HTTPMetrics)
// live on the default registry. The instance_info gauge lives on a
// registry built per Register call, so instances never share it.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs a metrics Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Name implements factory.RouteGroup.
func (h *Handler) Name() string { return "metrics" }

// Register implements factory.RouteGroup by serving GET /metrics.
func (h *Handler) Register(app *factory.App) {
	// Already-registered collectors are ignored, so this is safe under
	// WAFFLE's own call at startup.
	wafflemetrics.RegisterDefault(h.Log)

	reg := NewRegistry(app)
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer, reg}

	app.Router().Method("GET", "/metrics", promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}))
	h.Log.Debug("metrics endpoint registered", zap.String("instance_id", app.ID()))
}

// NewRegistry creates a registry holding the instance_info gauge for app.
func NewRegistry(app *factory.App) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "instance_info",
		Help:      "Constant 1, labelled with the instance id and data-store identifier.",
	}, []string{"instance_id", "database"})
	reg.MustRegister(info)
	info.WithLabelValues(app.ID(), app.Database()).Set(1)
	return reg
}
