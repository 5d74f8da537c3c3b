// Package main starts the metro ticketing HTTP server. It loads the network
// once at startup, wires the ticket store and serves the handlers package
// behind CORS and metrics middleware.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/cmd/api/middleware"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/config"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/handlers"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/network"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/parser"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/store"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/ticketing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := loadNetwork(cfg)
	if err != nil {
		log.Fatal(err)
	}
	stats := n.Stats()
	log.Printf("Loaded network: %d stations, %d lines, %d interchanges", stats.TotalStations, stats.TotalLines, stats.InterchangeStations)

	tickets, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal(err)
	}
	defer tickets.Close()
	log.Printf("Ticket store: %s", cfg.Store.Driver)

	svc := ticketing.NewService(n, tickets, ticketing.WithQuoteCache(cfg.Cache.Size, cfg.Cache.TTL))

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           newRouter(handlers.New(svc), cfg.CORS.AllowedOrigin),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// loadNetwork reads the configured network description and builds it once.
func loadNetwork(cfg config.Config) (*network.Network, error) {
	var (
		data *models.NetworkData
		err  error
	)
	if cfg.Network.GTFSPath != "" {
		data, err = parser.LoadGTFSFile(cfg.Network.GTFSPath)
	} else {
		data, err = parser.LoadNetworkFile(cfg.Network.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}

	fare := network.FarePolicy{Base: cfg.Fare.Base, PerStation: cfg.Fare.PerStation}
	return network.Build(data, network.WithFarePolicy(fare))
}

func newRouter(api *handlers.API, allowedOrigin string) http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Preflights are answered by Cors and never reach the request metrics.
	return middleware.Cors(allowedOrigin)(middleware.Metrics(mux))
}
