package service

import (
	"github.com/Lixing-Zhang/final-order-relay/internal/models"
	"github.com/shopspring/decimal"
)

const (
	eventDatePlaceholder   = "Event Date TBD"
	bookingTypePlaceholder = "Booking"
	depositItemName        = "Refundable Security Deposit"
	addOnsItemName         = "Add-Ons"
	nameSeparator          = " — "

	// OrderNotes is attached to every final order.
	OrderNotes = "Final balance + refundable $500 deposit. Surcharge handled by processor; ACH $0. Deposit refunded within 10 days."
)

// AssembleOrder builds the commerce order for a final payment: the balance,
// the deposit and, when the add-on total is positive, an add-ons line.
func AssembleOrder(p models.FinalPayment) models.OrderRequest {
	eventDate := eventDatePlaceholder
	if p.EventDate != nil {
		eventDate = *p.EventDate
	}
	bookingType := bookingTypePlaceholder
	if p.BookingType != nil {
		bookingType = *p.BookingType
	}

	items := []models.OrderItem{
		{
			Name:     "Final Balance" + nameSeparator + eventDate + nameSeparator + bookingType,
			Price:    p.BalanceDue,
			Quantity: 1,
		},
		{
			Name:     depositItemName,
			Price:    p.SecurityDeposit,
			Quantity: 1,
		},
	}

	if p.AddOnsTotal > 0 {
		name := addOnsItemName
		if p.AddOnsDetails != "" {
			name += nameSeparator + p.AddOnsDetails
		}
		items = append(items, models.OrderItem{
			Name:     name,
			Price:    p.AddOnsTotal,
			Quantity: 1,
		})
	}

	return models.OrderRequest{
		LocationID:  p.LocationID,
		ContactID:   p.ContactID,
		Currency:    p.Currency,
		Items:       items,
		TotalAmount: TotalAmount(items),
		Notes:       OrderNotes,
	}
}

// TotalAmount sums price*quantity in decimal to avoid float drift.
func TotalAmount(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.InexactFloat64()
}
