// Package fsm pre-validates order status changes against the role-gated
// order lifecycle. It is advisory: the order backend decides.
package fsm

import (
	stderrors "errors"
	"fmt"

	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/pkg/errors"
)

// Rule is one legal edge of the order lifecycle
type Rule struct {
	From  domain.OrderStatus
	To    domain.OrderStatus
	Roles []domain.Role
}

// Rules is the complete transition table. No other transition is legal.
var Rules = []Rule{
	{From: domain.OrderStatusOrdered, To: domain.OrderStatusShipped, Roles: []domain.Role{domain.RoleElevated}},
	{From: domain.OrderStatusOrdered, To: domain.OrderStatusCancelled, Roles: []domain.Role{domain.RoleStandard}},
	{From: domain.OrderStatusShipped, To: domain.OrderStatusDelivered, Roles: []domain.Role{domain.RoleElevated}},
}

func (r Rule) allows(role domain.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

func findRule(from, to domain.OrderStatus) (Rule, bool) {
	for _, r := range Rules {
		if r.From == from && r.To == to {
			return r, true
		}
	}
	return Rule{}, false
}

// LegalNextStates returns the states role may move an order to from current.
func LegalNextStates(current domain.OrderStatus, role domain.Role) []domain.OrderStatus {
	var next []domain.OrderStatus
	for _, r := range Rules {
		if r.From == current && r.allows(role) {
			next = append(next, r.To)
		}
	}
	return next
}

// Recommendation is the status a status-change form should preselect.
// A recommendation that is not Submittable is shown disabled and must never
// be sent to the backend.
type Recommendation struct {
	Status      domain.OrderStatus `json:"status"`
	Submittable bool               `json:"submittable"`
	Reason      errors.Reason      `json:"reason,omitempty"`
}

// RecommendedNext returns the default target for current and role. A
// SHIPPED order shown to a standard caller recommends DELIVERED disabled so
// the caller can see the next step they cannot take. Terminal states have
// no recommendation.
func RecommendedNext(current domain.OrderStatus, role domain.Role) (Recommendation, bool) {
	if next := LegalNextStates(current, role); len(next) > 0 {
		return Recommendation{Status: next[0], Submittable: true}, true
	}
	if current == domain.OrderStatusShipped && role == domain.RoleStandard {
		return Recommendation{
			Status: domain.OrderStatusDelivered,
			Reason: errors.ReasonRoleForbidden,
		}, true
	}
	return Recommendation{}, false
}

// Validate checks a proposed transition. It returns nil when the
// transition is allowed and *errors.ErrTransitionRejected otherwise.
func Validate(current, target domain.OrderStatus, role domain.Role) error {
	reject := func(reason errors.Reason) error {
		return &errors.ErrTransitionRejected{From: current, To: target, Role: role, Reason: reason}
	}

	if current.IsTerminal() {
		return reject(errors.ReasonTerminalState)
	}
	rule, ok := findRule(current, target)
	if !ok {
		return reject(errors.ReasonInvalidTransition)
	}
	if !rule.allows(role) {
		return reject(errors.ReasonRoleForbidden)
	}
	return nil
}

// ReasonOf extracts the rejection reason from an error returned by Validate.
func ReasonOf(err error) (errors.Reason, bool) {
	var rejected *errors.ErrTransitionRejected
	if stderrors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}

// Option is one entry of the status-change dropdown
type Option struct {
	Status   domain.OrderStatus `json:"status"`
	Label    string             `json:"label"`
	Disabled bool               `json:"disabled"`
	Reason   errors.Reason      `json:"reason,omitempty"`
}

// Options lists what the status-change dropdown shows for current and role:
// the legal successor, the disabled recommendation, or the final state.
func Options(current domain.OrderStatus, role domain.Role) []Option {
	if current.IsTerminal() {
		return []Option{{
			Status:   current,
			Label:    fmt.Sprintf("%s (Final state - no transitions)", current),
			Disabled: true,
			Reason:   errors.ReasonTerminalState,
		}}
	}

	rec, ok := RecommendedNext(current, role)
	if !ok {
		return nil
	}
	opt := Option{
		Status: rec.Status,
		Label:  fmt.Sprintf("%s (%s → %s)", rec.Status, current, rec.Status),
	}
	if !rec.Submittable {
		opt.Disabled = true
		opt.Reason = rec.Reason
		opt.Label += " - Admin only"
	}
	return []Option{opt}
}
