package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"autokit/internal/model"
	"autokit/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
//
// Status mapping: structural/email validation fails with 422 before the
// order service runs; an empty cart or an unresolvable product identifier is
// a 400; anything else surfaces as 500 with the underlying message. The
// request has exactly two terminal outcomes: order persisted and identifier
// returned, or nothing persisted and an error returned.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), h.logger)
		return
	}

	receipt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		message := err.Error()

		var invalidProduct *model.InvalidProductError
		switch {
		case errors.Is(err, model.ErrEmptyCart):
			status = http.StatusBadRequest
			message = model.ErrEmptyCart.Message
		case errors.As(err, &invalidProduct):
			status = http.StatusBadRequest
			message = invalidProduct.Error()
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}
