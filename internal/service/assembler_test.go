package service

import (
	"testing"

	"github.com/Lixing-Zhang/final-order-relay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAssembleOrder(t *testing.T) {
	tests := []struct {
		name      string
		payment   models.FinalPayment
		wantNames []string
		wantTotal float64
	}{
		{
			name: "placeholders when event date and booking type are absent",
			payment: models.FinalPayment{
				LocationID: "L1", ContactID: "C1", Currency: "USD",
				BalanceDue: 1000, SecurityDeposit: 500,
			},
			wantNames: []string{
				"Final Balance — Event Date TBD — Booking",
				"Refundable Security Deposit",
			},
			wantTotal: 1500,
		},
		{
			name: "add-ons with details",
			payment: models.FinalPayment{
				LocationID: "L1", ContactID: "C1", Currency: "USD",
				BalanceDue: 1000, SecurityDeposit: 500, AddOnsTotal: 250, AddOnsDetails: "Chairs",
			},
			wantNames: []string{
				"Final Balance — Event Date TBD — Booking",
				"Refundable Security Deposit",
				"Add-Ons — Chairs",
			},
			wantTotal: 1750,
		},
		{
			name: "add-ons without details",
			payment: models.FinalPayment{
				EventDate: strPtr("2026-06-01"), BookingType: strPtr("Wedding"),
				BalanceDue: 2000, SecurityDeposit: 500, AddOnsTotal: 99.5,
			},
			wantNames: []string{
				"Final Balance — 2026-06-01 — Wedding",
				"Refundable Security Deposit",
				"Add-Ons",
			},
			wantTotal: 2599.5,
		},
		{
			name: "zero add-ons omitted",
			payment: models.FinalPayment{
				BalanceDue: 10, SecurityDeposit: 5, AddOnsTotal: 0, AddOnsDetails: "ignored",
			},
			wantNames: []string{
				"Final Balance — Event Date TBD — Booking",
				"Refundable Security Deposit",
			},
			wantTotal: 15,
		},
		{
			name: "negative add-ons omitted",
			payment: models.FinalPayment{
				BalanceDue: 10, SecurityDeposit: 5, AddOnsTotal: -3,
			},
			wantNames: []string{
				"Final Balance — Event Date TBD — Booking",
				"Refundable Security Deposit",
			},
			wantTotal: 15,
		},
		{
			name: "decimal amounts sum without drift",
			payment: models.FinalPayment{
				BalanceDue: 0.1, SecurityDeposit: 0.2,
			},
			wantNames: []string{
				"Final Balance — Event Date TBD — Booking",
				"Refundable Security Deposit",
			},
			wantTotal: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := AssembleOrder(tt.payment)

			require.Len(t, order.Items, len(tt.wantNames))
			for i, item := range order.Items {
				assert.Equal(t, tt.wantNames[i], item.Name)
				assert.Equal(t, 1, item.Quantity)
			}
			assert.Equal(t, tt.wantTotal, order.TotalAmount)
			assert.Equal(t, TotalAmount(order.Items), order.TotalAmount)
			assert.Equal(t, OrderNotes, order.Notes)
			assert.Equal(t, tt.payment.LocationID, order.LocationID)
			assert.Equal(t, tt.payment.ContactID, order.ContactID)
			assert.Equal(t, tt.payment.Currency, order.Currency)
		})
	}
}

func TestAssembleOrder_ItemPrices(t *testing.T) {
	order := AssembleOrder(models.FinalPayment{
		BalanceDue: 1000, SecurityDeposit: 500, AddOnsTotal: 250,
	})

	require.Len(t, order.Items, 3)
	assert.Equal(t, 1000.0, order.Items[0].Price)
	assert.Equal(t, 500.0, order.Items[1].Price)
	assert.Equal(t, 250.0, order.Items[2].Price)
}

func TestAssembleOrder_Deterministic(t *testing.T) {
	p := models.FinalPayment{
		LocationID: "L1", ContactID: "C1", Currency: "EUR",
		BalanceDue: 12.34, SecurityDeposit: 56.78, AddOnsTotal: 9.1, AddOnsDetails: "Lights",
	}

	assert.Equal(t, AssembleOrder(p), AssembleOrder(p))
}
