package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/jmolenaar/Expense-Ledger-Backend/internal/api/middleware"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/config"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	accountService *service.AccountService,
	categoryService *service.CategoryService,
	transactionService *service.TransactionService,
	splitService *service.SplitService,
	analyticsService *service.AnalyticsService,
	advisorService *service.AdvisorService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(accountService)
			r.Get("/", accountHandler.AllAccounts)
			r.Post("/", accountHandler.CreateAccount)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
				r.Post("/default", accountHandler.SetDefault)
			})
		})

		r.Route("/category", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(categoryService)
			r.Get("/", categoryHandler.AllCategories)
			r.Post("/", categoryHandler.CreateCategory)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", categoryHandler.GetCategory)
				r.Put("/", categoryHandler.UpdateCategory)
				r.Delete("/", categoryHandler.DeleteCategory)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			splitHandler := handlers.NewSplitHandler(splitService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/bulk-delete", transactionHandler.BulkDelete)
			r.Post("/bulk-categorize", transactionHandler.BulkCategorize)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
				r.Post("/split", splitHandler.CreateSplit)
				r.Put("/split", splitHandler.UpdateSplit)
				r.Delete("/split", splitHandler.DeleteSplit)
				r.Post("/convert", splitHandler.ConvertToRegular)
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
			r.Get("/snapshot", analyticsHandler.Snapshot)
			r.Get("/transactions", analyticsHandler.FilteredTransactions)
			r.Get("/category-breakdown", analyticsHandler.CategoryBreakdown)
			r.Get("/top-merchants", analyticsHandler.TopMerchants)
			r.Get("/daily-spending", analyticsHandler.DailySpending)
			r.Get("/month-comparison", analyticsHandler.MonthComparison)
			r.Put("/filter", analyticsHandler.SetFilter)
			r.With(custommiddleware.APIKeyMiddleware).Post("/recompute", analyticsHandler.Recompute)
		})

		r.Route("/advisor", func(r chi.Router) {
			advisorHandler := handlers.NewAdvisorHandler(advisorService)
			r.Get("/suggest", advisorHandler.Suggest)
			r.Post("/feedback", advisorHandler.Feedback)
		})
	})

	return r
}
