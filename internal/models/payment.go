package models

// FinalPayment is a validated create-final-order request.
// EventDate and BookingType are nil when the caller omitted them.
type FinalPayment struct {
	LocationID      string
	ContactID       string
	EventDate       *string
	BookingType     *string
	BalanceDue      float64
	SecurityDeposit float64
	Currency        string
	AddOnsTotal     float64
	AddOnsDetails   string
}
