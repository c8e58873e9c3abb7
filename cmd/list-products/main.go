package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BisonV07/order-management-system/internal/config"
	"github.com/BisonV07/order-management-system/internal/orderapi"
	"github.com/BisonV07/order-management-system/internal/search"
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
	token := strings.TrimSpace(os.Getenv("ORDER_API_TOKEN"))

	products, err := client.GetProducts(context.Background(), token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	// Optional prefix narrows the listing the same way the orders page search does
	var match map[string]struct{}
	if len(os.Args) > 1 {
		match = search.Build(products).PrefixSearch(os.Args[1])
		fmt.Printf("🔍 Products matching prefix %q:\n\n", os.Args[1])
	} else {
		fmt.Println("📦 Products in catalog:")
		fmt.Println()
	}

	shown := 0
	for _, p := range products {
		if match != nil {
			if _, ok := match[p.ID]; !ok {
				continue
			}
		}
		shown++
		inventory := "n/a"
		if p.Inventory != nil {
			inventory = fmt.Sprintf("%d", *p.Inventory)
		}
		fmt.Printf("  %-12s %-16s %-32s %10.2f  stock: %s\n", p.ID, p.SKU, p.Name, p.Price, inventory)
	}

	if shown == 0 {
		fmt.Println("❌ No products found")
		return
	}
	fmt.Printf("\n✅ %d product(s)\n", shown)
}
