package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hearthapp/ledger-api/internal/store"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name: "with underlying error",
			err: NewServiceError("transaction", "create", "failed to save transaction",
				errors.New("connection refused")),
			expected: "transaction service create failed: failed to save transaction: connection refused",
		},
		{
			name:     "without underlying error",
			err:      NewServiceError("budget", "upsert", "failed to look up budget", nil),
			expected: "budget service upsert failed: failed to look up budget",
		},
		{
			name: "with store sentinel",
			err: NewServiceError("account", "create", "failed to save account",
				store.ErrDuplicate),
			expected: "account service create failed: failed to save account: entity already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	t.Run("exposes the wrapped error to errors.Is", func(t *testing.T) {
		err := NewServiceError("account", "create", "failed to save account", store.ErrDuplicate)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("nil cause unwraps to nil", func(t *testing.T) {
		err := NewServiceError("account", "create", "failed", nil)
		assert.Nil(t, err.Unwrap())
	})
}
