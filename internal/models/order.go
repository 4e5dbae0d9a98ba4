package models

// OrderItem is a single line item sent to the commerce API.
type OrderItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// OrderRequest is a provider-agnostic order ready for submission.
// TotalAmount is the sum of Price*Quantity over Items.
type OrderRequest struct {
	LocationID  string
	ContactID   string
	Currency    string
	Items       []OrderItem
	TotalAmount float64
	Notes       string
}

// OrderResult is what callers get back. Either field may be empty when the
// provider response had an unexpected shape.
type OrderResult struct {
	OrderID     string `json:"orderId"`
	CheckoutURL string `json:"checkout_url"`
}
