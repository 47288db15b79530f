package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/mgrech/go_sales/internal/cache"
	h "github.com/mgrech/go_sales/internal/http"
	"github.com/mgrech/go_sales/internal/publisher"
	"github.com/mgrech/go_sales/internal/repository"
	"github.com/mgrech/go_sales/internal/service"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("sales-service starting...")
	var wg sync.WaitGroup

	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	taxPolicyName := getEnv("TAX_POLICY", "vat")
	requestTimeout := 30 * time.Second

	// Database setup
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "sales")
	migrationsPath := getEnv("MIGRATIONS_PATH", "./internal/repository/migrations")

	port, err := strconv.Atoi(dbPort)
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	creds := &repository.Credentials{
		Host:              dbHost,
		Port:              port,
		User:              dbUser,
		Password:          dbPass,
		DBName:            dbName,
		MigrationsDirPath: migrationsPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Redis product cache
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	productCache := cache.NewRedisCache(redisClient)

	// Services
	productFinder := service.NewProductFinder(repo, productCache)
	suggester := service.NewEquivalentProductSuggester(repo)
	addProduct := service.NewAddProductService(repo, productFinder, repo, suggester)
	invoicing := service.NewInvoicingService()
	taxPolicy := service.TaxPolicyByName(taxPolicyName)
	issueInvoice := service.NewIssueInvoiceService(repo, productFinder, repo, invoicing, taxPolicy)

	// Outbox poller
	poller := publisher.NewOutboxPoller(repo, kafkaBrokers)
	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(pollerCtx)
	}()

	// HTTP surface
	reservationHandler := h.NewReservationHandler(addProduct, requestTimeout)
	invoiceHandler := h.NewInvoiceHandler(issueInvoice, repo, requestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/reservations/{reservation_id}/items", reservationHandler.AddItem)
		r.Post("/invoices", invoiceHandler.Issue)
		r.Get("/invoices/{invoice_id}", invoiceHandler.Get)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: r,
	}

	go func() {
		log.Printf("Sales service listening on :%s", httpPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down sales service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	pollerCancel()
	if err := poller.Close(); err != nil {
		log.Printf("Failed to close kafka writer: %v", err)
	}

	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	select {
	case <-doneChan:
		log.Println("Poller stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout reached, exiting")
	}
}
