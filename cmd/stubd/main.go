package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitstore/internal/config"
	"kitstore/internal/domain"
	"kitstore/internal/stubapi"
)

func main() {
	demo := flag.Bool("demo", false, "seed a small demo catalog on start")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[stubd] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	stub := stubapi.New(logger)
	if *demo {
		stub.Seed(demoCatalog())
		logger.Printf("seeded demo catalog")
	}

	srv := &http.Server{
		Addr:              cfg.StubAddr,
		Handler:           stub.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting stub backend on %s", cfg.StubAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func demoCatalog() []domain.Product {
	jerseys := &domain.Category{Name: "Jerseys", Slug: "jerseys"}
	posters := &domain.Category{Name: "Posters", Slug: "posters"}
	return []domain.Product{
		{
			Name: "Manchester United Home 08/09", Price: 4990,
			Team: "Manchester United", Size: "M", Brand: "Nike",
			League: "Premier League", Season: "2008-2009", KitType: "Home",
			ImageURL: "static/mu-home-0809.jpg",
			Gallery:  []string{"static/mu-home-0809.jpg", "static/mu-home-0809-back.jpg"},
			Category: jerseys,
		},
		{
			Name: "Arsenal Away 03/04", Price: 5490,
			Team: "Arsenal", Size: "L", Brand: "Nike",
			League: "Premier League", Season: "2003-2004", KitType: "Away",
			ImageURL: "static/arsenal-away-0304.jpg",
			Gallery:  []string{"static/arsenal-away-0304.jpg"},
			Category: jerseys,
		},
		{
			Name: "Barcelona Home 10/11", Price: 5990,
			Team: "Barcelona", Size: "S", Brand: "Nike",
			League: "La Liga", Season: "2010-2011", KitType: "Home",
			ImageURL: "static/barca-home-1011.jpg",
			Gallery:  []string{"static/barca-home-1011.jpg"},
			Category: jerseys,
		},
		{
			Name: "Maradona Poster", Price: 990,
			ImageURL: "static/maradona.jpg",
			Gallery:  []string{"static/maradona.jpg"},
			Category: posters,
		},
	}
}
