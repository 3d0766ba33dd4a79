package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hearthapp/ledger-api/internal/domain"
	"github.com/hearthapp/ledger-api/internal/store"
)

func TestStartReconciliation(t *testing.T) {
	ctx := context.Background()
	account := newStoredAccount(t, "Everyday Checking")
	statementDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("opens a reconciliation against an existing account", func(t *testing.T) {
		accounts := new(MockAccountStore)
		accounts.On("GetByID", ctx, account.ID).Return(account, nil)

		recs := new(MockReconciliationStore)
		recs.On("Create", ctx, mock.MatchedBy(func(r domain.Reconciliation) bool {
			return r.AccountID == account.ID &&
				r.Status == domain.ReconciliationInProgress
		})).Return(nil)

		svc := NewReconciliationService(nil, recs, accounts, new(MockTransactionStore), nil)
		rec, err := svc.StartReconciliation(ctx, StartReconciliationCommand{
			AccountID:        account.ID,
			StatementDate:    statementDate,
			StatementBalance: mustMoney(t, "500.00"),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.True(t, rec.ClearedBalance.IsZero())
		assert.True(t, rec.Difference.Equal(rec.StatementBalance))
		recs.AssertExpectations(t)
	})

	t.Run("unknown account passes not-found through", func(t *testing.T) {
		missing := uuid.New()
		accounts := new(MockAccountStore)
		accounts.On("GetByID", ctx, missing).
			Return(domain.Account{}, store.ErrAccountNotFound)

		recs := new(MockReconciliationStore)

		svc := NewReconciliationService(nil, recs, accounts, new(MockTransactionStore), nil)
		_, err := svc.StartReconciliation(ctx, StartReconciliationCommand{
			AccountID:        missing,
			StatementDate:    statementDate,
			StatementBalance: mustMoney(t, "500.00"),
		})

		assert.ErrorIs(t, err, store.ErrNotFound)
		recs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("zero statement date is a validation error", func(t *testing.T) {
		accounts := new(MockAccountStore)
		accounts.On("GetByID", ctx, account.ID).Return(account, nil)

		svc := NewReconciliationService(nil, new(MockReconciliationStore), accounts, new(MockTransactionStore), nil)
		_, err := svc.StartReconciliation(ctx, StartReconciliationCommand{
			AccountID:        account.ID,
			StatementBalance: mustMoney(t, "500.00"),
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("wraps store failures in a ServiceError", func(t *testing.T) {
		accounts := new(MockAccountStore)
		accounts.On("GetByID", ctx, account.ID).Return(account, nil)

		recs := new(MockReconciliationStore)
		recs.On("Create", ctx, mock.AnythingOfType("domain.Reconciliation")).
			Return(errors.New("connection refused"))

		svc := NewReconciliationService(nil, recs, accounts, new(MockTransactionStore), nil)
		_, err := svc.StartReconciliation(ctx, StartReconciliationCommand{
			AccountID:        account.ID,
			StatementDate:    statementDate,
			StatementBalance: mustMoney(t, "500.00"),
		})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "reconciliation", svcErr.Service)
		assert.Equal(t, "start", svcErr.Operation)
	})
}

func TestGetReconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored reconciliation", func(t *testing.T) {
		stored, err := domain.NewReconciliation(
			uuid.New(),
			time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			mustMoney(t, "500.00"))
		require.NoError(t, err)

		recs := new(MockReconciliationStore)
		recs.On("GetByID", ctx, stored.ID).Return(stored, nil)

		svc := NewReconciliationService(nil, recs, new(MockAccountStore), new(MockTransactionStore), nil)
		got, err := svc.GetReconciliation(ctx, stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("passes not-found through unchanged", func(t *testing.T) {
		missing := uuid.New()
		recs := new(MockReconciliationStore)
		recs.On("GetByID", ctx, missing).
			Return(domain.Reconciliation{}, store.ErrReconciliationNotFound)

		svc := NewReconciliationService(nil, recs, new(MockAccountStore), new(MockTransactionStore), nil)
		_, err := svc.GetReconciliation(ctx, missing)

		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
