package service

import (
	"strings"

	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/search"
)

// FilterOrders returns the orders visible for statusFilter and query.
// Orders whose id contains the query come first, then orders whose product
// matches by name or SKU prefix, each group in input order and every order
// at most once. orders is not modified.
func FilterOrders(orders []domain.Order, statusFilter domain.StatusFilter, query string, index *search.Index) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if statusFilter.Matches(o.CurrentStatus) {
			filtered = append(filtered, o)
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filtered
	}

	var productIDs map[string]struct{}
	if index != nil {
		productIDs = index.PrefixSearch(q)
	}

	var direct, catalog []domain.Order
	for _, o := range filtered {
		if strings.Contains(strings.ToLower(o.ID), q) {
			direct = append(direct, o)
		}
		if _, ok := productIDs[o.ProductID]; ok {
			catalog = append(catalog, o)
		}
	}

	result := make([]domain.Order, 0, len(direct)+len(catalog))
	seen := make(map[string]struct{}, len(direct)+len(catalog))
	for _, group := range [][]domain.Order{direct, catalog} {
		for _, o := range group {
			if _, ok := seen[o.ID]; ok {
				continue
			}
			seen[o.ID] = struct{}{}
			result = append(result, o)
		}
	}
	return result
}
