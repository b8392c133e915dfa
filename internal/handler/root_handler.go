package handler

import (
	"net/http"

	"github.com/rs/zerolog"
)

// RootHandler answers the banner endpoint.
type RootHandler struct {
	logger zerolog.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(logger zerolog.Logger) *RootHandler {
	return &RootHandler{
		logger: logger.With().Str("handler", "root").Logger(),
	}
}

// Index handles GET / requests. The catch-all mux pattern sends every
// unmatched path here, so anything but the exact root is a 404.
func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "AutoKit API is running",
	})
}
