package service

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/fsm"
	"github.com/BisonV07/order-management-system/internal/search"
	"github.com/BisonV07/order-management-system/pkg/errors"
)

// OrderBackend is the authoritative order service
type OrderBackend interface {
	GetOrders(ctx context.Context, token string) ([]domain.Order, error)
	GetOrderHistory(ctx context.Context, token, orderID string) ([]domain.OrderHistoryEntry, error)
	GetProducts(ctx context.Context, token string) ([]domain.Product, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, target domain.OrderStatus) (*domain.StatusUpdate, error)
}

// Caller identifies who is looking at the orders page
type Caller struct {
	Token string
	Role  domain.Role
}

// OrdersView serves the orders page: it keeps the search index in step with
// the catalog, filters order snapshots and gates status changes.
type OrdersView struct {
	backend OrderBackend
	logger  *zap.Logger

	mu      sync.RWMutex
	catalog []domain.Product // indexed fields of the last snapshot
	index   *search.Index

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewOrdersView creates an orders view over backend
func NewOrdersView(backend OrderBackend, logger *zap.Logger) *OrdersView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrdersView{
		backend:  backend,
		logger:   logger,
		index:    search.New(),
		inflight: map[string]struct{}{},
	}
}

func sameIndexedText(a, b domain.Product) bool {
	return a.ID == b.ID && a.Name == b.Name && a.SKU == b.SKU
}

// UpdateCatalog rebuilds the search index if the indexed text of products
// differs from the previous snapshot, and returns the current index.
func (v *OrdersView) UpdateCatalog(products []domain.Product) *search.Index {
	v.mu.RLock()
	unchanged := v.catalog != nil && slices.EqualFunc(v.catalog, products, sameIndexedText)
	idx := v.index
	v.mu.RUnlock()
	if unchanged {
		return idx
	}

	idx = search.Build(products)
	snapshot := make([]domain.Product, len(products))
	for i, p := range products {
		snapshot[i] = domain.Product{ID: p.ID, Name: p.Name, SKU: p.SKU}
	}

	v.mu.Lock()
	v.catalog = snapshot
	v.index = idx
	v.mu.Unlock()

	v.logger.Debug("Search index rebuilt", zap.Int("products", len(products)), zap.Int("indexed_ids", idx.Len()))
	return idx
}

// InvalidateCatalog forces the next UpdateCatalog to rebuild
func (v *OrdersView) InvalidateCatalog() {
	v.mu.Lock()
	v.catalog = nil
	v.mu.Unlock()
}

// Index returns the index built from the latest catalog snapshot
func (v *OrdersView) Index() *search.Index {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.index
}

// Snapshot fetches the caller's orders and the catalog concurrently and
// brings the index up to date.
func (v *OrdersView) Snapshot(ctx context.Context, caller Caller) ([]domain.Order, *search.Index, error) {
	var (
		orders   []domain.Order
		products []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = v.backend.GetOrders(gctx, caller.Token)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = v.backend.GetProducts(gctx, caller.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, v.UpdateCatalog(products), nil
}

// ListOrders returns the caller's orders that pass statusFilter and query
func (v *OrdersView) ListOrders(ctx context.Context, caller Caller, statusFilter domain.StatusFilter, query string) ([]domain.Order, error) {
	orders, idx, err := v.Snapshot(ctx, caller)
	if err != nil {
		return nil, err
	}
	return FilterOrders(orders, statusFilter, query, idx), nil
}

// SearchCatalog returns the sorted ids of products matching the prefix q
func (v *OrdersView) SearchCatalog(ctx context.Context, caller Caller, q string) ([]string, error) {
	products, err := v.backend.GetProducts(ctx, caller.Token)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return []string{}, nil
	}
	return v.UpdateCatalog(products).IDs(q), nil
}

// History returns the status log of one order
func (v *OrdersView) History(ctx context.Context, caller Caller, orderID string) ([]domain.OrderHistoryEntry, error) {
	return v.backend.GetOrderHistory(ctx, caller.Token, orderID)
}

func (v *OrdersView) findOrder(ctx context.Context, caller Caller, orderID string) (*domain.Order, error) {
	orders, err := v.backend.GetOrders(ctx, caller.Token)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
}

// DefaultTarget is the status preselected in the status-change form. For an
// id that is not in orders (typed in by hand) it falls back to what the
// caller could do with a freshly placed order.
func DefaultTarget(orders []domain.Order, orderID string, role domain.Role) (fsm.Recommendation, bool) {
	current := domain.OrderStatusOrdered
	for _, o := range orders {
		if o.ID == orderID {
			current = o.CurrentStatus
			break
		}
	}
	return fsm.RecommendedNext(current, role)
}

// Transitions describes what the caller can do with one order
type Transitions struct {
	OrderID        string               `json:"order_id"`
	CurrentStatus  domain.OrderStatus   `json:"current_status"`
	Terminal       bool                 `json:"terminal"`
	LegalNext      []domain.OrderStatus `json:"legal_next_states"`
	Recommendation *fsm.Recommendation  `json:"recommendation,omitempty"`
	Options        []fsm.Option         `json:"options"`
}

// DescribeTransitions builds Transitions for order and role
func DescribeTransitions(order domain.Order, role domain.Role) Transitions {
	t := Transitions{
		OrderID:       order.ID,
		CurrentStatus: order.CurrentStatus,
		Terminal:      order.CurrentStatus.IsTerminal(),
		LegalNext:     fsm.LegalNextStates(order.CurrentStatus, role),
		Options:       fsm.Options(order.CurrentStatus, role),
	}
	if t.LegalNext == nil {
		t.LegalNext = []domain.OrderStatus{}
	}
	if t.Options == nil {
		t.Options = []fsm.Option{}
	}
	if rec, ok := fsm.RecommendedNext(order.CurrentStatus, role); ok {
		t.Recommendation = &rec
	}
	return t
}

// Transitions looks the order up and describes its transitions
func (v *OrdersView) Transitions(ctx context.Context, caller Caller, orderID string) (*Transitions, error) {
	order, err := v.findOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	t := DescribeTransitions(*order, caller.Role)
	return &t, nil
}

// Verdict is the local answer to "may I move this order to target?"
type Verdict struct {
	OrderID       string             `json:"order_id"`
	CurrentStatus domain.OrderStatus `json:"current_status"`
	TargetStatus  domain.OrderStatus `json:"target_status"`
	Allowed       bool               `json:"allowed"`
	Reason        errors.Reason      `json:"reason,omitempty"`
	Message       string             `json:"message,omitempty"`
}

// NewVerdict validates current → target for role
func NewVerdict(orderID string, current, target domain.OrderStatus, role domain.Role) Verdict {
	verdict := Verdict{OrderID: orderID, CurrentStatus: current, TargetStatus: target, Allowed: true}
	if reason, ok := fsm.ReasonOf(fsm.Validate(current, target, role)); ok {
		verdict.Allowed = false
		verdict.Reason = reason
		verdict.Message = reason.Message()
	}
	return verdict
}

// Check validates a proposed status change against the order's current status
func (v *OrdersView) Check(ctx context.Context, caller Caller, orderID string, target domain.OrderStatus) (*Verdict, error) {
	order, err := v.findOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	verdict := NewVerdict(orderID, order.CurrentStatus, target, caller.Role)
	return &verdict, nil
}

func (v *OrdersView) acquire(orderID string) bool {
	v.inflightMu.Lock()
	defer v.inflightMu.Unlock()
	if _, busy := v.inflight[orderID]; busy {
		return false
	}
	v.inflight[orderID] = struct{}{}
	return true
}

func (v *OrdersView) release(orderID string) {
	v.inflightMu.Lock()
	delete(v.inflight, orderID)
	v.inflightMu.Unlock()
}

// SubmitStatusChange validates a status change locally and, only if it is
// allowed, forwards it to the backend. Backend errors are returned as they
// are; nothing is retried. A second submission for an order whose change is
// still in flight fails with *errors.ErrConflict.
func (v *OrdersView) SubmitStatusChange(ctx context.Context, caller Caller, orderID string, target domain.OrderStatus) (*domain.StatusUpdate, error) {
	if !v.acquire(orderID) {
		return nil, &errors.ErrConflict{Message: "a status change for order " + orderID + " is already in progress"}
	}
	defer v.release(orderID)

	order, err := v.findOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if err := fsm.Validate(order.CurrentStatus, target, caller.Role); err != nil {
		v.logger.Info("Status change rejected locally",
			zap.String("order_id", orderID),
			zap.String("from", string(order.CurrentStatus)),
			zap.String("to", string(target)),
			zap.String("role", string(caller.Role)),
			zap.Error(err),
		)
		return nil, err
	}

	v.logger.Info("Submitting status change",
		zap.String("order_id", orderID),
		zap.String("from", string(order.CurrentStatus)),
		zap.String("to", string(target)),
	)
	update, err := v.backend.UpdateOrderStatus(ctx, caller.Token, orderID, target)
	if err != nil {
		v.logger.Warn("Order backend refused status change", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}

	// Cancelling restores inventory on the backend; the next read rebuilds the index.
	if update.CurrentStatus == domain.OrderStatusCancelled {
		v.InvalidateCatalog()
		v.logger.Info("Order cancelled, catalog refresh required", zap.String("order_id", orderID))
	}
	return update, nil
}
