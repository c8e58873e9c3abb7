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
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-order/main.go <query> [status]")
		fmt.Println("Example: go run cmd/find-order/main.go widget SHIPPED")
		fmt.Println("Set ORDER_API_TOKEN to the bearer token of the account to search as.")
		os.Exit(1)
	}

	query := os.Args[1]
	statusFilter := domain.StatusFilterAll
	if len(os.Args) > 2 {
		f, ok := domain.ParseStatusFilter(os.Args[2])
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown status filter: %s\n", os.Args[2])
			os.Exit(1)
		}
		statusFilter = f
	}

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

	fmt.Printf("🔍 Searching orders for %q (status: %s)\n\n", query, statusFilter)

	orders, err := view.ListOrders(context.Background(), caller, statusFilter, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search orders: %v\n", err)
		os.Exit(1)
	}

	for i, o := range orders {
		fmt.Printf("Order #%d:\n", i+1)
		fmt.Printf("  Order ID: %s\n", o.ID)
		fmt.Printf("  Product ID: %s\n", o.ProductID)
		fmt.Printf("  Quantity: %d\n", o.Quantity)
		fmt.Printf("  Status: %s\n", o.CurrentStatus)
		if rec, ok := service.DefaultTarget(orders, o.ID, caller.Role); ok {
			if rec.Submittable {
				fmt.Printf("  Next: %s\n", rec.Status)
			} else {
				fmt.Printf("  Next: %s (not available: %s)\n", rec.Status, rec.Reason.Message())
			}
		}
		fmt.Println()
	}

	if len(orders) == 0 {
		fmt.Println("❌ No matching orders found.")
	} else {
		fmt.Printf("✅ Found %d order(s)\n", len(orders))
	}
}
