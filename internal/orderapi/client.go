// Package orderapi calls the authoritative order backend.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/BisonV07/order-management-system/internal/domain"
)

var tracer = otel.Tracer("github.com/BisonV07/order-management-system/internal/orderapi")

type requestIDKey struct{}

// WithRequestID attaches a request id that is forwarded as X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// APIError is a non-2xx answer from the order backend. Message is the
// backend's own text and is meant to be shown to the user as is.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("order backend returned %d", e.StatusCode)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client calls the order backend with the caller's bearer token. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an order backend HTTP client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// GetOrders fetches the caller's orders
func (c *Client) GetOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderHistory fetches the status change log of one order
func (c *Client) GetOrderHistory(ctx context.Context, token, orderID string) ([]domain.OrderHistoryEntry, error) {
	var history []domain.OrderHistoryEntry
	path := "/orders/" + url.PathEscape(orderID) + "/history"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &history, attribute.String("order.id", orderID)); err != nil {
		return nil, err
	}
	return history, nil
}

// GetProducts fetches the product catalog
func (c *Client) GetProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateOrderStatus asks the backend to move an order to target
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, target domain.OrderStatus) (*domain.StatusUpdate, error) {
	body := map[string]domain.OrderStatus{"current_status": target}
	var update domain.StatusUpdate
	path := "/orders/" + url.PathEscape(orderID)
	err := c.do(ctx, http.MethodPatch, path, token, body, &update,
		attribute.String("order.id", orderID),
		attribute.String("order.target_status", string(target)),
	)
	if err != nil {
		return nil, err
	}
	return &update, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}, attrs ...attribute.KeyValue) error {
	if c.baseURL == "" {
		return fmt.Errorf("orderapi client not configured: base URL required")
	}

	ctx, span := tracer.Start(ctx, "orderapi "+method+" "+path)
	defer span.End()
	span.SetAttributes(append(attrs, attribute.String("http.method", method))...)

	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Order backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("order backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read order backend response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Code = eb.Error
			apiErr.Message = eb.Message
		}
		if apiErr.Message == "" && apiErr.Code == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		c.logger.Info("Order backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Error()),
		)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode order backend response: %w", err)
	}
	return nil
}
