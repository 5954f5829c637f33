package repository

import (
	"context"
	"testing"
	"time"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunicationRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t).DB
	customerRepo := NewCustomerRepository(db)
	repo := NewCommunicationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	customer, err := customerRepo.Create(ctx, newTestCustomer(model.RegionTulkarm, "Talkative Co", now))
	require.NoError(t, err)

	t.Run("create assigns id", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.CommunicationLog{
			CustomerID: customer.ID,
			Details:    "Called, no answer",
			LoggedAt:   now,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, customer.ID, created.CustomerID)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.CommunicationLog{
			CustomerID: customer.ID,
			Details:    "Follow-up email",
			LoggedAt:   now.Add(time.Minute),
		})
		require.NoError(t, err)

		logs, err := repo.ListByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "Follow-up email", logs[0].Details)
		assert.Equal(t, "Called, no answer", logs[1].Details)
	})

	t.Run("same-second entries keep insertion order, newest on top", func(t *testing.T) {
		at := now.Add(time.Hour)
		_, err := repo.Create(ctx, &model.CommunicationLog{CustomerID: customer.ID, Details: "first", LoggedAt: at})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &model.CommunicationLog{CustomerID: customer.ID, Details: "second", LoggedAt: at})
		require.NoError(t, err)

		logs, err := repo.ListByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(logs), 2)
		assert.Equal(t, "second", logs[0].Details)
		assert.Equal(t, "first", logs[1].Details)
	})

	t.Run("unknown customer yields empty list", func(t *testing.T) {
		logs, err := repo.ListByCustomer(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}
