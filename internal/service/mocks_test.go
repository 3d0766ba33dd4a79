package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/store"
)

// MockAccountStore mocks the store.AccountStore interface
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Create(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAccountStore) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountStore) Update(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	args := m.Called(tx)
	return args.Get(0).(store.AccountStore)
}

// MockTransactionStore mocks the store.TransactionStore interface
type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) Create(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionStore) CreateMultiple(ctx context.Context, txs []domain.Transaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) Update(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionStore) UpdateMultiple(ctx context.Context, txs []domain.Transaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockTransactionStore) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) ListByDateRange(
	ctx context.Context,
	accountID uuid.UUID,
	from, to time.Time,
) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) ListByCategoryAndDateRange(
	ctx context.Context,
	categoryID uuid.UUID,
	from, to time.Time,
) ([]domain.Transaction, error) {
	args := m.Called(ctx, categoryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) ListByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]domain.Transaction, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	args := m.Called(tx)
	return args.Get(0).(store.TransactionStore)
}

// MockBudgetStore mocks the store.BudgetStore interface
type MockBudgetStore struct {
	mock.Mock
}

func (m *MockBudgetStore) Create(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Budget), args.Error(1)
}

func (m *MockBudgetStore) GetByCategoryAndPeriod(
	ctx context.Context,
	categoryID uuid.UUID,
	period domain.BudgetPeriod,
) (domain.Budget, error) {
	args := m.Called(ctx, categoryID, period)
	return args.Get(0).(domain.Budget), args.Error(1)
}

func (m *MockBudgetStore) ListByPeriod(
	ctx context.Context,
	period domain.BudgetPeriod,
) ([]domain.Budget, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetStore) Update(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetStore) WithTx(tx *sql.Tx) store.BudgetStore {
	args := m.Called(tx)
	return args.Get(0).(store.BudgetStore)
}

// MockReconciliationStore mocks the store.ReconciliationStore interface
type MockReconciliationStore struct {
	mock.Mock
}

func (m *MockReconciliationStore) Create(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (domain.Reconciliation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationStore) Update(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationStore) WithTx(tx *sql.Tx) store.ReconciliationStore {
	args := m.Called(tx)
	return args.Get(0).(store.ReconciliationStore)
}
