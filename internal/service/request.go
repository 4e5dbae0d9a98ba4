package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/final-order-relay/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	defaultCurrency = "USD"
	maxBodyBytes    = 1 << 20
)

var (
	ErrInvalidBody    = errors.New("invalid request body")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidNumeric = errors.New("invalid numeric values")
)

var validate = validator.New()

// finalOrderRequest is the wire shape of POST /create-final-order.
// Amounts stay raw so numeric strings and numbers can both be accepted.
type finalOrderRequest struct {
	LocationID      string           `json:"locationId"      validate:"required"`
	ContactID       string           `json:"contactId"       validate:"required"`
	EventDate       *string          `json:"eventDate"`
	BookingType     *string          `json:"bookingType"`
	BalanceDue      *json.RawMessage `json:"balanceDue"      validate:"required"`
	SecurityDeposit *json.RawMessage `json:"securityDeposit" validate:"required"`
	Currency        string           `json:"currency"`
	AddOnsTotal     *json.RawMessage `json:"addOnsTotal"`
	AddOnsDetails   string           `json:"addOnsDetails"`
}

// ParseFinalOrderRequest decodes and validates a create-final-order body.
// An empty body counts as an empty object.
func ParseFinalOrderRequest(body io.Reader) (models.FinalPayment, error) {
	var req finalOrderRequest

	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return models.FinalPayment{}, errors.Join(ErrInvalidBody, err)
	}

	if err := validate.Struct(&req); err != nil {
		return models.FinalPayment{}, errors.Join(ErrMissingFields, err)
	}

	return req.toModel()
}

func (r *finalOrderRequest) toModel() (models.FinalPayment, error) {
	balanceDue, ok := coerceNumber(*r.BalanceDue)
	if !ok || !isFinite(balanceDue) {
		return models.FinalPayment{}, ErrInvalidNumeric
	}

	securityDeposit, ok := coerceNumber(*r.SecurityDeposit)
	if !ok || !isFinite(securityDeposit) {
		return models.FinalPayment{}, ErrInvalidNumeric
	}

	// A non-numeric add-on total means "no add-ons"; an infinite one is still rejected.
	var addOnsTotal float64
	if r.AddOnsTotal != nil {
		if v, ok := coerceNumber(*r.AddOnsTotal); ok && !math.IsNaN(v) {
			addOnsTotal = v
		}
	}
	if math.IsInf(addOnsTotal, 0) {
		return models.FinalPayment{}, ErrInvalidNumeric
	}

	currency := r.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return models.FinalPayment{
		LocationID:      r.LocationID,
		ContactID:       r.ContactID,
		EventDate:       r.EventDate,
		BookingType:     r.BookingType,
		BalanceDue:      balanceDue,
		SecurityDeposit: securityDeposit,
		Currency:        currency,
		AddOnsTotal:     addOnsTotal,
		AddOnsDetails:   r.AddOnsDetails,
	}, nil
}

// coerceNumber accepts a JSON number or a string holding one. Blank strings
// and null are zero. Anything else is not a number.
func coerceNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, true
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
	} else {
		s = string(raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports overflow with ±Inf and ErrRange; keep the infinity.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && math.IsInf(v, 0) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
