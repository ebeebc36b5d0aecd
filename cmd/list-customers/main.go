package main

import (
	"fmt"
	"log"

	"meditation-mondays/internal/config"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Lists Stripe customers for manual reconciliation against ticket sales.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Stripe.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not configured")
	}

	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	count := 0
	iter := api.Customers.List(&stripe.CustomerListParams{})
	for iter.Next() {
		c := iter.Customer()
		fmt.Printf("%s\t%s\t%s\n", c.ID, c.Email, c.Name)
		count++
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Failed to list customers:", err)
	}

	fmt.Printf("%d customer(s)\n", count)
}
