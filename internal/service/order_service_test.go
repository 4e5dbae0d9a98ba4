package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Lixing-Zhang/final-order-relay/internal/models"
)

// fakeCreator records every submitted order.
type fakeCreator struct {
	calls  int
	orders []models.OrderRequest
	result *models.OrderResult
	err    error
}

func (f *fakeCreator) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderResult, error) {
	f.calls++
	f.orders = append(f.orders, order)
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderService_CreateFinalOrder(t *testing.T) {
	upstreamErr := errors.New("upstream failed")

	tests := []struct {
		name      string
		payment   models.FinalPayment
		creator   *fakeCreator
		wantErr   error
		wantItems int
		wantTotal float64
	}{
		{
			name: "balance and deposit",
			payment: models.FinalPayment{
				LocationID: "L1", ContactID: "C1", Currency: "USD",
				BalanceDue: 1000, SecurityDeposit: 500,
			},
			creator:   &fakeCreator{result: &models.OrderResult{OrderID: "o1", CheckoutURL: "https://pay/o1"}},
			wantItems: 2,
			wantTotal: 1500,
		},
		{
			name: "with add-ons",
			payment: models.FinalPayment{
				LocationID: "L1", ContactID: "C1", Currency: "USD",
				BalanceDue: 1000, SecurityDeposit: 500, AddOnsTotal: 250, AddOnsDetails: "Chairs",
			},
			creator:   &fakeCreator{result: &models.OrderResult{OrderID: "o2"}},
			wantItems: 3,
			wantTotal: 1750,
		},
		{
			name: "client error is returned unchanged",
			payment: models.FinalPayment{
				LocationID: "L1", ContactID: "C1", Currency: "USD",
				BalanceDue: 1, SecurityDeposit: 1,
			},
			creator:   &fakeCreator{err: upstreamErr},
			wantErr:   upstreamErr,
			wantItems: 2,
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderService := NewOrderService(tt.creator, discardLogger())

			result, err := orderService.CreateFinalOrder(context.Background(), tt.payment)

			if tt.creator.calls != 1 {
				t.Fatalf("creator calls = %d, want 1", tt.creator.calls)
			}
			sent := tt.creator.orders[0]
			if len(sent.Items) != tt.wantItems {
				t.Errorf("items count = %d, want %d", len(sent.Items), tt.wantItems)
			}
			if sent.TotalAmount != tt.wantTotal {
				t.Errorf("total = %v, want %v", sent.TotalAmount, tt.wantTotal)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateFinalOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateFinalOrder() unexpected error = %v", err)
			}
			if result != tt.creator.result {
				t.Errorf("result = %+v, want %+v", result, tt.creator.result)
			}
		})
	}
}
