package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxDiagnosticCollections caps the collection listing in /test output.
const maxDiagnosticCollections = 10

// DiagnosticsResponse is the body of GET /test.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsHandler reports process and store health. It always answers
// 200: every store failure is folded into the response body so the endpoint
// keeps working when the database does not.
type DiagnosticsHandler struct {
	database *mongo.Database
	uriIsSet bool
	logger   zerolog.Logger
}

// NewDiagnosticsHandler creates a new diagnostics handler. The database
// handle may be nil when no store connection could be established.
func NewDiagnosticsHandler(database *mongo.Database, uriIsSet bool, logger zerolog.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		database: database,
		uriIsSet: uriIsSet,
		logger:   logger.With().Str("handler", "diagnostics").Logger(),
	}
}

// Status handles GET /test requests.
func (h *DiagnosticsHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := DiagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      "not set",
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if h.uriIsSet {
		resp.DatabaseURL = "set"
	}

	if h.database == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Database = "available"
	resp.DatabaseName = h.database.Name()
	resp.ConnectionStatus = "connected"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	names, err := h.database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		h.logger.Warn().Err(err).Msg("collection listing failed")
		resp.Database = "connected but failing: " + truncate(err.Error(), 50)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	resp.Collections = names
	resp.Database = "connected and working"

	writeJSON(w, http.StatusOK, resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
