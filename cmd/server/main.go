package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/config"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/database"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/jobs"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	advisorRepo := repository.NewAdvisorRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Create services
	systemService := service.NewSystemService(db)
	analyticsService := service.NewAnalyticsService(transactionRepo, categoryRepo, cfg.Analytics.Debounce)
	transactionService := service.NewTransactionService(transactionRepo, analyticsService)
	splitService := service.NewSplitService(uow, analyticsService)
	accountService := service.NewAccountService(accountRepo, transactionRepo, uow, analyticsService)
	categoryService := service.NewCategoryService(categoryRepo, analyticsService)
	advisorService := service.NewAdvisorService(advisorRepo, categoryRepo)

	// Start the analytics recompute worker and warm the first snapshot
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go analyticsService.Run(workerCtx)
	if err := analyticsService.Recompute(workerCtx); err != nil {
		log.Printf("Initial analytics recompute failed: %v", err)
	}

	// Start scheduled maintenance jobs
	scheduler, err := jobs.NewScheduler(accountRepo, transactionRepo, analyticsService)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		accountService,
		categoryService,
		transactionService,
		splitService,
		analyticsService,
		advisorService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
