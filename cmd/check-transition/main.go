package main

import (
	"fmt"
	"os"

	"github.com/BisonV07/order-management-system/internal/domain"
	"github.com/BisonV07/order-management-system/internal/fsm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/check-transition/main.go <current_status> <role> [target_status]")
		fmt.Println("Example: go run cmd/check-transition/main.go SHIPPED user DELIVERED")
		os.Exit(1)
	}

	current, ok := domain.ParseOrderStatus(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown order status: %s\n", os.Args[1])
		os.Exit(1)
	}
	role := domain.ParseRole(os.Args[2])

	fmt.Printf("📦 %s as %s\n\n", current, role)

	next := fsm.LegalNextStates(current, role)
	if len(next) == 0 {
		fmt.Println("Legal next states: none")
	} else {
		fmt.Printf("Legal next states: %v\n", next)
	}

	if rec, ok := fsm.RecommendedNext(current, role); ok {
		fmt.Printf("Recommended: %s (submittable: %t)\n", rec.Status, rec.Submittable)
	} else {
		fmt.Println("Recommended: none")
	}

	fmt.Println("Options:")
	for _, opt := range fsm.Options(current, role) {
		marker := "  "
		if opt.Disabled {
			marker = "✗ "
		}
		fmt.Printf("  %s%s\n", marker, opt.Label)
	}

	if len(os.Args) < 4 {
		return
	}
	target, ok := domain.ParseOrderStatus(os.Args[3])
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown target status: %s\n", os.Args[3])
		os.Exit(1)
	}

	fmt.Println()
	if reason, rejected := fsm.ReasonOf(fsm.Validate(current, target, role)); rejected {
		fmt.Printf("❌ %s → %s: %s (%s)\n", current, target, reason.Message(), reason)
		os.Exit(2)
	}
	fmt.Printf("✅ %s → %s is allowed\n", current, target)
}
