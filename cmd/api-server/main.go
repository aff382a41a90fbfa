package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"preconstruction/db"
	"preconstruction/db/migrations"
	"preconstruction/internal/config"
	"preconstruction/internal/handlers"
	"preconstruction/internal/mockstore"
	"preconstruction/internal/procore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	store := mockstore.New()
	api := procore.NewClient(cfg.APIBaseURL, cfg.CompanyID, cfg.RateLimit)

	// журнал в Postgres необязателен; без POSTGRES_CONN Journal остаётся nil
	var journal handlers.SyncLogJournal
	if cfg.PostgresConn != "" {
		dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
		if err != nil {
			log.Fatalf("Cannot connect to DB: %v", err)
		}
		defer dbConn.Close()

		if err := migrations.Run(dbConn.DB); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
		journal = db.NewStorage(dbConn)
	} else {
		log.Println("POSTGRES_CONN is not set, sync log journal disabled")
	}

	h := handlers.NewHandler(store, api, journal, cfg)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: handlers.NewRouter(h),
	}

	go func() {
		log.Printf("Starting server on %s (mode %s)", cfg.ServerAddress, cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
