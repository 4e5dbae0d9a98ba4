package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/final-order-relay/internal/config"
	"github.com/Lixing-Zhang/final-order-relay/internal/models"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ordersPath       = "/orders/"
	requestTimeout   = 15 * time.Second
	maxRetries       = 2
	defaultBackoff   = 200 * time.Millisecond
	maxResponseBytes = 1 << 20
	orderStatus      = "unpaid"
)

// Attempt outcomes reported to the observer.
const (
	OutcomeSuccess        = "success"
	OutcomeTransient      = "transient"
	OutcomeClientError    = "client_error"
	OutcomeTransportError = "transport_error"
)

type attemptObserver interface {
	ObserveAttempt(outcome string)
}

// Client submits orders to the commerce platform REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration
	observer   attemptObserver
	log        *slog.Logger
}

// option is a function that configures the Client.
type option func(*Client)

// WithHTTPClient replaces the default client with its 15s timeout.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHTTPClient(hc *http.Client) option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseBackoff sets the delay before the first retry. It doubles after each attempt.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBaseBackoff(d time.Duration) option {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithAttemptObserver reports the outcome of every attempt.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAttemptObserver(o attemptObserver) option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a new commerce API client.
func NewClient(cfg config.CommerceConfig, log *slog.Logger, opts ...option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultCommerceBaseURL
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		backoff:    defaultBackoff,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type orderPayload struct {
	Status      string             `json:"status"`
	Currency    string             `json:"currency"`
	OrderItems  []models.OrderItem `json:"orderItems"`
	TotalAmount float64            `json:"totalAmount"`
	Notes       string             `json:"notes"`
}

type createOrderPayload struct {
	LocationID string       `json:"locationId"`
	ContactID  string       `json:"contactId"`
	Order      orderPayload `json:"order"`
}

func newCreateOrderPayload(order models.OrderRequest) createOrderPayload {
	items := make([]models.OrderItem, len(order.Items))
	for i, item := range order.Items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items[i] = item
	}

	return createOrderPayload{
		LocationID: order.LocationID,
		ContactID:  order.ContactID,
		Order: orderPayload{
			Status:      orderStatus,
			Currency:    order.Currency,
			OrderItems:  items,
			TotalAmount: order.TotalAmount,
			Notes:       order.Notes,
		},
	}
}

// CreateOrder submits the order, retrying 5xx responses up to twice with
// exponential backoff. Any other failure is returned after one attempt.
// A failed submission is always an *APIError, except ErrMissingAPIKey.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(newCreateOrderPayload(order))
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %w", err)
	}

	requestID := chimiddleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	for attempt := 0; ; attempt++ {
		result, attemptErr := c.do(ctx, body, requestID, attempt)
		if attemptErr == nil {
			c.observe(OutcomeSuccess)
			return result, nil
		}

		c.observe(attemptErr.outcome())
		c.log.ErrorContext(ctx, "commerce order creation failed",
			"status", attemptErr.status,
			"attempt", attempt,
			"error", attemptErr.message,
		)

		if !attemptErr.transient() || attempt >= maxRetries {
			return nil, attemptErr.toAPIError(attempt + 1)
		}

		if err := sleep(ctx, c.backoffFor(attempt)); err != nil {
			c.log.WarnContext(ctx, "order retry abandoned", "attempt", attempt, "error", err)
			return nil, attemptErr.toAPIError(attempt + 1)
		}
	}
}

// backoffFor returns the wait after the given zero-based attempt.
func (c *Client) backoffFor(attempt int) time.Duration {
	return c.backoff << attempt
}

func (c *Client) do(ctx context.Context, body []byte, requestID string, attempt int) (*models.OrderResult, *attemptError) {
	url := c.baseURL + ordersPath

	ctx, span := otel.Tracer("final-order-relay/commerce").Start(ctx, "POST "+ordersPath,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethodKey.String(http.MethodPost),
			semconv.HTTPURLKey.String(url),
			attribute.Int("relay.attempt", attempt),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, &attemptError{message: err.Error(), err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(chimiddleware.RequestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, &attemptError{message: err.Error(), err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// The order was accepted; a truncated body only loses the identifiers.
		c.log.WarnContext(ctx, "failed to read commerce response body", "error", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, &attemptError{
			status:  resp.StatusCode,
			message: errorMessage(raw, resp.StatusCode),
		}
	}

	result := normalizeResult(raw)
	if result.OrderID == "" || result.CheckoutURL == "" {
		c.log.ErrorContext(ctx, "unexpected commerce response payload",
			"status", resp.StatusCode,
			"attempt", attempt,
			"has_order_id", result.OrderID != "",
			"has_checkout_url", result.CheckoutURL != "",
		)
	}

	return result, nil
}

func (c *Client) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveAttempt(outcome)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
