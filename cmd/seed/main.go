package main

import (
	"context"
	"log"
	"os"

	"kitstore/internal/config"
	"kitstore/internal/gateway"
	"kitstore/internal/seed"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if len(os.Args) < 2 {
		logger.Fatalf("usage: seed <catalog.csv>")
	}

	cfg := config.FromEnv()
	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatalf("open catalog: %v", err)
	}
	defer file.Close()

	client := gateway.New(cfg.APIBaseURL, cfg.TelegramUserID, cfg.HTTPTimeout, logger)
	loader := seed.NewCSVLoader(file, client)

	count, err := loader.Run(context.Background())
	if err != nil {
		logger.Fatalf("seed failed after %d products: %v", count, err)
	}
	logger.Printf("seeded %d products", count)
}
