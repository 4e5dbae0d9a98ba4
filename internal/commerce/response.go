package commerce

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Lixing-Zhang/final-order-relay/internal/models"
)

// Known locations of the identifiers in a create-order response, in priority order.
var (
	orderIDPaths = [][]string{
		{"orderId"},
		{"order", "id"},
	}
	checkoutURLPaths = [][]string{
		{"checkout_url"},
		{"checkoutUrl"},
		{"order", "checkoutUrl"},
	}
)

// normalizeResult extracts the order id and checkout URL from a success body.
// Missing or non-JSON bodies yield empty strings.
func normalizeResult(raw []byte) *models.OrderResult {
	data := decodeObject(raw)

	return &models.OrderResult{
		OrderID:     firstString(data, orderIDPaths),
		CheckoutURL: firstString(data, checkoutURLPaths),
	}
}

// errorMessage prefers the provider's own message over a generic status line.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("request failed with status code %d", status)
}

func decodeObject(raw []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil
	}
	return data
}

func firstString(data map[string]any, paths [][]string) string {
	for _, path := range paths {
		if s := lookupString(data, path); s != "" {
			return s
		}
	}
	return ""
}

func lookupString(data map[string]any, path []string) string {
	var current any = data
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = obj[key]
	}

	switch v := current.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
