package domain

import "strings"

// OrderStatus represents the lifecycle state of an order as reported by the order backend
type OrderStatus string

const (
	// ORDERED - Order placed, the only initial state
	OrderStatusOrdered OrderStatus = "ORDERED"
	// SHIPPED - Order handed to the carrier
	OrderStatusShipped OrderStatus = "SHIPPED"
	// DELIVERED - Order delivered (terminal)
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// CANCELLED - Order cancelled by the customer (terminal)
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// AllStatuses lists every order status in lifecycle order
var AllStatuses = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOrdered, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave this status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus maps a case-insensitive status string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", false
	}
	return status, true
}

// Role is the caller's permission class for status changes
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleElevated Role = "ELEVATED"
)

// ParseRole turns the role string issued at login into a Role.
// "admin" in any case is elevated; everything else, including empty, is standard.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), "admin") {
		return RoleElevated
	}
	return RoleStandard
}

// StatusFilter selects orders by status; StatusFilterAll keeps every order
type StatusFilter string

const StatusFilterAll StatusFilter = "ALL"

// ParseStatusFilter accepts "ALL" or an order status; empty means ALL.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(StatusFilterAll)) {
		return StatusFilterAll, true
	}
	status, ok := ParseOrderStatus(s)
	if !ok {
		return "", false
	}
	return StatusFilter(status), true
}

// Matches reports whether an order in the given status passes the filter
func (f StatusFilter) Matches(status OrderStatus) bool {
	return f == StatusFilterAll || OrderStatus(f) == status
}
