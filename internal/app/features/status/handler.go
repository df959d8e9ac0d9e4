package status

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/raiden-network/scenario-services/internal/app/factory"
	"github.com/raiden-network/scenario-services/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger checks data-store connectivity. *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for the status endpoint.
type Handler struct {
	Store Pinger
	Log   *zap.Logger
}

// NewHandler constructs a status Handler. store may be nil when the
// service runs without a data-store client.
func NewHandler(store Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Store: store,
		Log:   logger,
	}
}

// Name implements factory.RouteGroup.
func (h *Handler) Name() string { return "status" }

// Register implements factory.RouteGroup by mounting under /status.
func (h *Handler) Register(app *factory.App) {
	app.Router().Mount("/status", Routes(h))
}

// statusResponse is the JSON structure for the status response.
type statusResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id,omitempty"`
	Database   string `json:"database,omitempty"`
	Store      string `json:"store"`
	Error      string `json:"error,omitempty"`
}

// Serve handles GET /status.
//
// On success: 200 and
//
//	{ "status":"ok", "instance_id":"…", "database":"default", "store":"connected" }
//
// On store failure: 503 and
//
//	{ "status":"error", "store":"disconnected", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{
		Status: "ok",
		Store:  "unconfigured",
	}
	if app, ok := factory.Current(r); ok {
		resp.InstanceID = app.ID()
		resp.Database = app.Database()
	}

	if h.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.Store.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("status: store ping failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Store = "disconnected"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Store = "connected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
