package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate/db"
	"estate/db/migrations"
	"estate/internal/config"
	"estate/internal/estate"
	"estate/internal/handlers"
	"estate/internal/logging"
	"estate/internal/metrics"
	"estate/internal/playground"
	"estate/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.LogFile != "" {
		rw, err := logging.Setup(cfg.LogFile)
		if err != nil {
			log.Fatalf("Cannot open log file: %v", err)
		}
		defer rw.Close()
	}

	dbConn, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.DBConnectionLimit)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB, cfg.DBDriver); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := db.NewStorage(dbConn)
	svc := estate.NewService(store, metrics.New(reg))

	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatalf("Cannot load seed file: %v", err)
		}
		if err := svc.Seed(ctx, seed.Types(), seed.Tags(), seed.UserList()); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Printf("Seed data loaded from %s", cfg.SeedFile)
	}

	sched := scheduler.New(cfg.OfferExpiryCron, svc)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Scheduler error: %v", err)
	}
	defer sched.Stop()

	h := handlers.NewHandler(store, svc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", h.Routes)
	r.Get("/awesome_owl", playground.Handler)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Printf("Starting server on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
