package errors

import (
	"fmt"

	"github.com/BisonV07/order-management-system/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the caller could not be identified
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when a status change for the same order is already in flight
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when request input is malformed
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// Reason classifies why a status transition was rejected locally.
type Reason string

const (
	ReasonTerminalState     Reason = "TERMINAL_STATE"
	ReasonRoleForbidden     Reason = "ROLE_FORBIDDEN"
	ReasonInvalidTransition Reason = "INVALID_TRANSITION"
)

// Message returns the user-visible text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonTerminalState:
		return "this order is in a final state"
	case ReasonRoleForbidden:
		return "you do not have permission to make this change"
	case ReasonInvalidTransition:
		return "that transition is not allowed"
	default:
		return "status change rejected"
	}
}

// ErrTransitionRejected is returned when a status transition fails local validation
type ErrTransitionRejected struct {
	From   domain.OrderStatus
	To     domain.OrderStatus
	Role   domain.Role
	Reason Reason
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from %s to %s rejected for %s: %s", e.From, e.To, e.Role, e.Reason.Message())
}
