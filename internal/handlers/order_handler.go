package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/final-order-relay/internal/commerce"
	"github.com/Lixing-Zhang/final-order-relay/internal/models"
	"github.com/Lixing-Zhang/final-order-relay/internal/service"
)

const createOrderFailed = "Failed to create order"

type finalOrderCreator interface {
	CreateFinalOrder(ctx context.Context, p models.FinalPayment) (*models.OrderResult, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService finalOrderCreator
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService finalOrderCreator, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateFinalOrder handles POST /create-final-order
func (h *OrderHandler) CreateFinalOrder(w http.ResponseWriter, r *http.Request) {
	payment, err := service.ParseFinalOrderRequest(r.Body)
	if err != nil {
		h.log.WarnContext(r.Context(), "rejected final order request", "error", err)

		switch {
		case errors.Is(err, service.ErrMissingFields):
			WriteError(w, http.StatusBadRequest, "Missing required fields", h.log)
		case errors.Is(err, service.ErrInvalidNumeric):
			WriteError(w, http.StatusBadRequest, "Invalid numeric values", h.log)
		default:
			WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		}
		return
	}

	result, err := h.orderService.CreateFinalOrder(r.Context(), payment)
	if err != nil {
		status, details := failureStatus(err)
		h.log.ErrorContext(r.Context(), "failed to create order",
			"status", status,
			"attempts", attempts(err),
			"error", details,
		)
		WriteErrorDetails(w, status, createOrderFailed, details, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.log)
	h.log.InfoContext(r.Context(), "final order created",
		"order_id", result.OrderID,
		"location_id", payment.LocationID,
	)
}

// failureStatus maps a submission error to a response status in 400-599
// and the message shown to the caller.
func failureStatus(err error) (int, string) {
	var apiErr *commerce.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, detailMessage(err.Error())
	}

	status := apiErr.Status
	if status < 400 || status >= 600 {
		status = http.StatusInternalServerError
	}
	return status, detailMessage(apiErr.Message)
}

func detailMessage(msg string) string {
	if msg == "" {
		return "Unexpected error"
	}
	return msg
}

func attempts(err error) int {
	var apiErr *commerce.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Attempts
	}
	return 0
}
