package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/final-order-relay/internal/models"
)

// OrderCreator submits an assembled order to the commerce provider.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderResult, error)
}

// OrderService handles final order business logic
type OrderService struct {
	creator OrderCreator
	log     *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(creator OrderCreator, log *slog.Logger) *OrderService {
	return &OrderService{
		creator: creator,
		log:     log,
	}
}

// CreateFinalOrder assembles the final payment order and submits it.
func (s *OrderService) CreateFinalOrder(ctx context.Context, p models.FinalPayment) (*models.OrderResult, error) {
	order := AssembleOrder(p)

	s.log.DebugContext(ctx, "submitting final order",
		"location_id", order.LocationID,
		"contact_id", order.ContactID,
		"items_count", len(order.Items),
		"total_amount", order.TotalAmount,
	)

	return s.creator.CreateOrder(ctx, order)
}
