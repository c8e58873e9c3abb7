package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BisonV07/order-management-system/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1/", time.Second, zaptest.NewLogger(t))
}

func TestGetOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"o1","user_id":7,"product_id":"p1","quantity":2,"current_status":"ORDERED"}]`))
	})

	orders, err := c.GetOrders(WithRequestID(context.Background(), "req-1"), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 7, orders[0].UserID)
	assert.Equal(t, domain.OrderStatusOrdered, orders[0].CurrentStatus)
}

func TestGetProductsAndHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/products":
			_, _ = w.Write([]byte(`[{"id":"p1","sku":"WID-1","name":"Widget","price":9.5}]`))
		case "/api/v1/orders/o1/history":
			_, _ = w.Write([]byte(`[{"order_id":"o1","previous_status":"ORDERED","new_status":"SHIPPED","updated_by":1,"updated_at":"2025-01-07T10:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	})

	products, err := c.GetProducts(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "WID-1", products[0].SKU)

	history, err := c.GetOrderHistory(context.Background(), "tok", "o1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.OrderStatusShipped, history[0].NewStatus)
}

func TestUpdateOrderStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/orders/o1", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SHIPPED", body["current_status"])
		_, _ = w.Write([]byte(`{"order_id":"o1","previous_status":"ORDERED","current_status":"SHIPPED","updated_by":1}`))
	})

	update, err := c.UpdateOrderStatus(context.Background(), "tok", "o1", domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOrdered, update.PreviousStatus)
	assert.Equal(t, domain.OrderStatusShipped, update.CurrentStatus)
}

func TestBackendErrorIsVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"invalid_transition","message":"invalid transition from SHIPPED to SHIPPED"}`))
	})

	_, err := c.UpdateOrderStatus(context.Background(), "tok", "o1", domain.OrderStatusShipped)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "invalid_transition", apiErr.Code)
	assert.Equal(t, "invalid transition from SHIPPED to SHIPPED", apiErr.Error())
}

func TestBackendErrorPlainText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := c.GetOrders(context.Background(), "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestNoRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.UpdateOrderStatus(context.Background(), "tok", "o1", domain.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, nil)
	_, err := c.GetOrders(context.Background(), "tok")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("", 0, nil)
	_, err := c.GetProducts(context.Background(), "")
	assert.Error(t, err)
}
