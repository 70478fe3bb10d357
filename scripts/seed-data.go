package main

import (
	"fmt"
	"log"
	"time"

	"crm_manager/internal/blobstore"
	"crm_manager/internal/config"
	"crm_manager/internal/models"
	"crm_manager/internal/store"
)

func main() {
	fmt.Println("Seeding demo data...")

	// Load configuration
	cfg := config.Load()

	blobs := openStorage(cfg)

	customers, err := store.NewCustomerStore(blobs)
	if err != nil {
		log.Fatal("Failed to load customer store:", err)
	}
	products, err := store.NewProductStore(blobs)
	if err != nil {
		log.Fatal("Failed to load product store:", err)
	}
	prospects, err := store.NewProspectStore(blobs)
	if err != nil {
		log.Fatal("Failed to load prospect store:", err)
	}
	sales, err := store.NewSalesStore(blobs)
	if err != nil {
		log.Fatal("Failed to load sales store:", err)
	}
	blog, err := store.NewBlogStore(blobs)
	if err != nil {
		log.Fatal("Failed to load blog store:", err)
	}

	if len(products.All()) > 0 {
		fmt.Println("Store already has data, skipping seed")
		return
	}

	// Demo product with per-variant pricing
	fmt.Println("Creating demo product...")
	sofa, err := products.Add(models.Product{
		Name: "Legacy Classic Sofa",
		Pricing: map[models.Variant]models.VariantPricing{
			models.TwoSeater:   {Price: 500, Cost: 300},
			models.FiveSeater:  {Price: 1000, Cost: 600},
			models.SevenSeater: {Price: 1500, Cost: 900},
		},
	})
	if err != nil {
		log.Fatal("Failed to create product:", err)
	}

	// Demo customer with one priced order
	fmt.Println("Creating demo customer...")
	quantity := map[models.Variant]int{models.FiveSeater: 2}
	totalAmount, grossProfit := models.OrderTotals(sofa, quantity)
	customer, err := customers.Add(models.Customer{
		Name:     "Jane Lim",
		Email:    "jane@example.com",
		Phone:    "60123456789",
		Location: "Penang",
		Orders: []models.CustomerOrder{{
			ProductID:   sofa.ID,
			Quantity:    quantity,
			OrderDate:   time.Now(),
			TotalAmount: totalAmount,
			GrossProfit: grossProfit,
		}},
	})
	if err != nil {
		log.Fatal("Failed to create customer:", err)
	}
	if err := products.RecordSale(sofa.ID, totalAmount); err != nil {
		log.Printf("Warning: failed to record product sale: %v", err)
	}

	fmt.Println("Creating demo prospect...")
	if _, err := prospects.Add(models.Prospect{
		Name:     "Lee Wong",
		Phone:    "60198765432",
		Location: "Ipoh",
	}); err != nil {
		log.Fatal("Failed to create prospect:", err)
	}

	fmt.Println("Creating yearly sales history...")
	year := time.Now().Year()
	if _, err := sales.UpsertYear(year-1, 400000); err != nil {
		log.Fatal("Failed to record sales history:", err)
	}
	if _, err := sales.UpsertYear(year, 500000); err != nil {
		log.Fatal("Failed to record sales history:", err)
	}

	fmt.Println("Creating demo blog post...")
	if _, err := blog.Add(models.BlogPost{
		Title:    "Welcome to our showroom",
		Content:  "Drop by and try out the new Legacy Classic range.",
		Author:   "admin",
		Category: string(models.CategoryUpdate),
	}); err != nil {
		log.Fatal("Failed to create blog post:", err)
	}

	fmt.Println("Seed complete")
	fmt.Println("Customer:", customer.Name)
	fmt.Println("Product:", sofa.Name)
}

func openStorage(cfg *config.Config) blobstore.Store {
	switch cfg.StorageBackend {
	case "redis":
		blobs, err := blobstore.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		return blobs
	case "postgres":
		blobs, err := blobstore.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		return blobs
	default:
		log.Fatalf("Seeding requires a persistent backend, got %q", cfg.StorageBackend)
		return nil
	}
}
