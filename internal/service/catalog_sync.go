package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

var catalogSyncMu sync.Mutex

// RunCatalogSyncOnce fetches the catalog with token and refreshes the
// search index if the catalog changed. Logs and returns on failure.
func RunCatalogSyncOnce(ctx context.Context, view *OrdersView, token string, logger *zap.Logger) {
	if token == "" {
		logger.Debug("Catalog sync skipped: CATALOG_SYNC_TOKEN not set")
		return
	}
	products, err := view.backend.GetProducts(ctx, token)
	if err != nil {
		logger.Warn("Catalog sync: failed to fetch products", zap.Error(err))
		return
	}
	idx := view.UpdateCatalog(products)
	logger.Debug("Catalog sync: done", zap.Int("products", len(products)), zap.Int("indexed_ids", idx.Len()))
}

// RunCatalogSyncLoop runs sync once, then every interval until ctx is done. Call from a goroutine.
func RunCatalogSyncLoop(ctx context.Context, view *OrdersView, token string, interval time.Duration, logger *zap.Logger) {
	catalogSyncMu.Lock()
	RunCatalogSyncOnce(ctx, view, token, logger)
	catalogSyncMu.Unlock()

	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			catalogSyncMu.Lock()
			RunCatalogSyncOnce(ctx, view, token, logger)
			catalogSyncMu.Unlock()
		}
	}
}
