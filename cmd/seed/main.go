// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
	"consignkeep/internal/infrastructure/storage/postgres"
	"consignkeep/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	clientRepo := postgres.NewClientRepo(txManager)
	productRepo := postgres.NewProductRepo(txManager)

	if err := seedClients(ctx, clientRepo, log); err != nil {
		log.Fatalw("failed to seed clients", "error", err)
	}
	if err := seedProducts(ctx, productRepo, log); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedClients(ctx context.Context, repo client.Repository, log *logger.Logger) error {
	seeds := []struct {
		name, address, phone string
	}{
		{"Al Noor Grocery", "Muttrah Souq", "+968 9123 0001"},
		{"Seeb Corner Shop", "Seeb High Street", "+968 9123 0002"},
		{"Ruwi Mini Market", "Ruwi Market Road", "+968 9123 0003"},
	}

	for _, s := range seeds {
		c := client.New(s.name, s.address, s.phone)
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		log.Infow("seeded client", "name", c.Name, "id", c.ID)
	}
	return nil
}

func seedProducts(ctx context.Context, repo product.Repository, log *logger.Logger) error {
	seeds := []struct {
		name, category, price, unit string
		stock, minLevel             int
	}{
		{"Dates 500g", "Food", "5.500", "box", 120, 20},
		{"Halwa Tin", "Food", "3.250", "tin", 80, 15},
		{"Rose Water 250ml", "Beverages", "1.750", "bottle", 60, 10},
		{"Frankincense Pack", "Incense", "8.000", "pack", 40, 5},
	}

	for _, s := range seeds {
		p := product.New(s.name, s.category, types.MustMoney(s.price), s.unit)
		p.Stock = s.stock
		p.MinLevel = s.minLevel
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		log.Infow("seeded product", "name", p.Name, "id", p.ID)
	}
	return nil
}
