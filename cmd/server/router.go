package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hearthapp/ledger-api/internal/api"
	apiMiddleware "github.com/hearthapp/ledger-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	transactionHandler := api.NewTransactionHandler(app.transactionService, app.logger)
	transferHandler := api.NewTransferHandler(app.transferService, app.logger)
	budgetHandler := api.NewBudgetHandler(app.budgetService, app.logger)
	reconciliationHandler := api.NewReconciliationHandler(app.reconciliationService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints
		r.Post("/accounts", accountHandler.CreateAccount)
		r.Get("/accounts", accountHandler.ListAccounts)
		r.Get("/accounts/{id}", accountHandler.GetAccount)
		r.Post("/accounts/{id}/deactivate", accountHandler.DeactivateAccount)
		r.Post("/accounts/{id}/reactivate", accountHandler.ReactivateAccount)
		r.Post("/accounts/{id}/recalculate", accountHandler.RecalculateBalance)

		// Transaction endpoints
		r.Post("/transactions", transactionHandler.CreateTransaction)
		r.Get("/transactions", transactionHandler.ListTransactions)
		r.Get("/transactions/{id}", transactionHandler.GetTransaction)
		r.Patch("/transactions/{id}/amount", transactionHandler.UpdateAmount)
		r.Post("/transactions/{id}/settle", transactionHandler.SettleTransaction)
		r.Post("/transactions/{id}/clear", transactionHandler.ClearTransaction)
		r.Post("/transactions/{id}/void", transactionHandler.VoidTransaction)

		// Transfer endpoint
		r.Post("/transfers", transferHandler.ExecuteTransfer)

		// Budget endpoints
		r.Put("/budgets", budgetHandler.UpsertBudget)
		r.Get("/budgets/summary", budgetHandler.GetBudgetSummary)

		// Reconciliation endpoints
		r.Post("/reconciliations", reconciliationHandler.StartReconciliation)
		r.Get("/reconciliations/{id}", reconciliationHandler.GetReconciliation)
		r.Post("/reconciliations/{id}/match", reconciliationHandler.MatchTransactions)
		r.Post("/reconciliations/{id}/unmatch", reconciliationHandler.UnmatchTransaction)
		r.Post("/reconciliations/{id}/complete", reconciliationHandler.CompleteReconciliation)
		r.Post("/reconciliations/{id}/abandon", reconciliationHandler.AbandonReconciliation)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
