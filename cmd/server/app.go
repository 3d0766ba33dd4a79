package main

import (
	"database/sql"
	"log/slog"

	"github.com/hearthapp/ledger-api/internal/config"
	"github.com/hearthapp/ledger-api/internal/platform/postgres"
	"github.com/hearthapp/ledger-api/internal/service"
)

// application bundles the configuration, shared infrastructure, and the
// service graph the HTTP layer depends on.
type application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger

	accountService        service.AccountService
	transactionService    service.TransactionService
	transferService       service.TransferService
	budgetService         service.BudgetService
	reconciliationService service.ReconciliationService
}

// newApplication wires stores and services over the shared database handle.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) *application {
	accountStore := postgres.NewAccountStore(db, logger)
	transactionStore := postgres.NewTransactionStore(db, logger)
	journalStore := postgres.NewJournalEntryStore(db, logger)
	budgetStore := postgres.NewBudgetStore(db, logger)
	reconciliationStore := postgres.NewReconciliationStore(db, logger)

	return &application{
		config: cfg,
		db:     db,
		logger: logger,

		accountService: service.NewAccountService(
			db, accountStore, transactionStore, logger),
		transactionService: service.NewTransactionService(
			db, accountStore, transactionStore, journalStore, logger),
		transferService: service.NewTransferService(
			db, accountStore, transactionStore, journalStore, logger),
		budgetService: service.NewBudgetService(
			db, budgetStore, transactionStore, logger),
		reconciliationService: service.NewReconciliationService(
			db, reconciliationStore, accountStore, transactionStore, logger),
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
