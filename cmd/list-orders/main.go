package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BisonV07/order-management-system/internal/config"
	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/orderapi"
	"github.com/BisonV07/order-management-system/internal/service"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := orderapi.NewClient(cfg.OrderAPI.BaseURL, cfg.OrderAPI.Timeout, logger)
	view := service.NewOrdersView(client, logger)
	caller := service.Caller{
		Token: strings.TrimSpace(os.Getenv("ORDER_API_TOKEN")),
		Role:  domain.ParseRole(os.Getenv("ORDER_API_ROLE")),
	}
	withHistory := len(os.Args) > 1 && os.Args[1] == "--history"

	fmt.Println("📋 Listing orders visible to this account:")

	ctx := context.Background()
	orders, err := view.ListOrders(ctx, caller, domain.StatusFilterAll, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	counts := map[domain.OrderStatus]int{}
	for i, o := range orders {
		counts[o.CurrentStatus]++
		fmt.Printf("\nOrder #%d:\n", i+1)
		fmt.Printf("  ID: %s\n", o.ID)
		fmt.Printf("  Product ID: %s\n", o.ProductID)
		fmt.Printf("  Quantity: %d\n", o.Quantity)
		fmt.Printf("  Status: %s\n", o.CurrentStatus)
		fmt.Printf("  Created: %s\n", o.CreatedAt.Format("2006-01-02 15:04:05"))

		if !withHistory {
			continue
		}
		history, err := view.History(ctx, caller, o.ID)
		if err != nil {
			fmt.Printf("  History: unavailable (%v)\n", err)
			continue
		}
		for _, h := range history {
			fmt.Printf("    %s  %s → %s (user %d)\n",
				h.UpdatedAt.Format("2006-01-02 15:04:05"), h.PreviousStatus, h.NewStatus, h.UpdatedBy)
		}
	}

	if len(orders) == 0 {
		fmt.Println("\n❌ No orders found")
		return
	}
	fmt.Printf("\n✅ Total: %d order(s)\n", len(orders))
	for _, s := range domain.AllStatuses {
		fmt.Printf("  %s: %d\n", s, counts[s])
	}
}
