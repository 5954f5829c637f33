package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(region model.Region, company string, at time.Time) *model.Customer {
	return &model.Customer{
		Region:        region,
		CompanyName:   company,
		CreatedAt:     at,
		LastUpdatedAt: at,
	}
}

func TestCustomerRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("roundtrip", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			Region:        model.RegionNablus,
			CompanyName:   "Acme Trading",
			Address:       "Main St 1",
			ContactPerson: "Sami",
			Mobile1:       "0590000001",
			CreatedAt:     now,
			LastUpdatedAt: now,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RegionNablus, got.Region)
		assert.Equal(t, "Acme Trading", got.CompanyName)
		assert.Equal(t, "Sami", got.ContactPerson)
		assert.True(t, got.CreatedAt.Equal(got.LastUpdatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, 9999)
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})
}

func TestCustomerRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	created, err := repo.Create(ctx, newTestCustomer(model.RegionJenin, "Old Name", now))
	require.NoError(t, err)

	t.Run("updates fields and bumps last_updated", func(t *testing.T) {
		later := now.Add(time.Hour)
		err := repo.Update(ctx, &model.Customer{
			ID:            created.ID,
			CompanyName:   "New Name",
			Address:       "New Address",
			LastUpdatedAt: later,
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", got.CompanyName)
		assert.Equal(t, "New Address", got.Address)
		assert.Equal(t, model.RegionJenin, got.Region, "region is immutable")
		assert.True(t, got.LastUpdatedAt.After(got.CreatedAt))
	})

	t.Run("clears optional fields omitted from the edit", func(t *testing.T) {
		err := repo.Update(ctx, &model.Customer{
			ID:            created.ID,
			CompanyName:   "New Name",
			LastUpdatedAt: now.Add(2 * time.Hour),
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Address)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := repo.Update(ctx, &model.Customer{ID: 9999, CompanyName: "X", LastUpdatedAt: now})
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})
}

func TestCustomerRepository_TouchLastUpdated(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	created, err := repo.Create(ctx, newTestCustomer(model.RegionHebron, "Touchable", now))
	require.NoError(t, err)

	t.Run("bumps timestamp", func(t *testing.T) {
		later := now.Add(time.Minute)
		require.NoError(t, repo.TouchLastUpdated(ctx, created.ID, later))

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.LastUpdatedAt.After(now))
	})

	t.Run("unknown id", func(t *testing.T) {
		err := repo.TouchLastUpdated(ctx, 9999, now)
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})
}

func TestCustomerRepository_ListByRegion(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	logRepo := NewCommunicationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older, err := repo.Create(ctx, newTestCustomer(model.RegionRamallah, "Older Co", now.Add(-time.Hour)))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, newTestCustomer(model.RegionRamallah, "Newer Co", now))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTestCustomer(model.RegionNablus, "Elsewhere Co", now))
	require.NoError(t, err)

	_, err = logRepo.Create(ctx, &model.CommunicationLog{CustomerID: older.ID, Details: "first call", LoggedAt: now.Add(-30 * time.Minute)})
	require.NoError(t, err)
	_, err = logRepo.Create(ctx, &model.CommunicationLog{CustomerID: older.ID, Details: "second call", LoggedAt: now.Add(-10 * time.Minute)})
	require.NoError(t, err)

	t.Run("returns region rows newest-updated first with annotations", func(t *testing.T) {
		got, err := repo.ListByRegion(ctx, model.RegionRamallah)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, int64(0), got[0].CommunicationCount)
		assert.Nil(t, got[0].LastCommunicationAt)

		assert.Equal(t, older.ID, got[1].ID)
		assert.Equal(t, int64(2), got[1].CommunicationCount)
		require.NotNil(t, got[1].LastCommunicationAt)
		assert.WithinDuration(t, now.Add(-10*time.Minute), *got[1].LastCommunicationAt, time.Second)
	})

	t.Run("empty region", func(t *testing.T) {
		got, err := repo.ListByRegion(ctx, model.RegionTubas)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCustomerRepository_Search(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := repo.Create(ctx, &model.Customer{
		Region: model.RegionJericho, CompanyName: "Desert Fruits",
		ContactPerson: "Leila", Address: "Market Road",
		CreatedAt: now, LastUpdatedAt: now,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Customer{
		Region: model.RegionSalfit, CompanyName: "Hilltop Supplies",
		ContactPerson: "Omar", Address: "Industrial Zone",
		CreatedAt: now, LastUpdatedAt: now,
	})
	require.NoError(t, err)

	t.Run("matches company name case-insensitively", func(t *testing.T) {
		got, err := repo.Search(ctx, "desert")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Desert Fruits", got[0].CompanyName)
	})

	t.Run("matches contact person", func(t *testing.T) {
		got, err := repo.Search(ctx, "OMAR")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Hilltop Supplies", got[0].CompanyName)
	})

	t.Run("matches address substring", func(t *testing.T) {
		got, err := repo.Search(ctx, "market")
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := repo.Search(ctx, "zzz-nothing")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCustomerRepository_Counts(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newTestCustomer(model.RegionBethlehem, "Co", now))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newTestCustomer(model.RegionQalqilya, "Co", now))
	require.NoError(t, err)

	t.Run("count by region is zero-filled for all ten regions", func(t *testing.T) {
		counts, err := repo.CountByRegion(ctx)
		require.NoError(t, err)
		assert.Len(t, counts, len(model.Regions))
		assert.Equal(t, int64(3), counts[model.RegionBethlehem])
		assert.Equal(t, int64(1), counts[model.RegionQalqilya])
		assert.Equal(t, int64(0), counts[model.RegionTulkarm])
	})

	t.Run("total equals sum of per-region counts", func(t *testing.T) {
		total, err := repo.CountAll(ctx)
		require.NoError(t, err)

		counts, err := repo.CountByRegion(ctx)
		require.NoError(t, err)
		var sum int64
		for _, c := range counts {
			sum += c
		}
		assert.Equal(t, total, sum)
	})
}

func TestCustomerRepository_StatisticsQueries(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	logRepo := NewCommunicationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	quiet, err := repo.Create(ctx, newTestCustomer(model.RegionRamallah, "Quiet Co", now))
	require.NoError(t, err)
	busy, err := repo.Create(ctx, newTestCustomer(model.RegionNablus, "Busy Co", now))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = logRepo.Create(ctx, &model.CommunicationLog{
			CustomerID: busy.ID,
			Details:    "visit",
			LoggedAt:   now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err = logRepo.Create(ctx, &model.CommunicationLog{
		CustomerID: quiet.ID,
		Details:    "intro call",
		LoggedAt:   now.Add(time.Hour),
	})
	require.NoError(t, err)

	t.Run("recent communications newest first with company context", func(t *testing.T) {
		got, err := repo.RecentCommunications(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "Quiet Co", got[0].CompanyName)
		assert.Equal(t, "intro call", got[0].Details)
		assert.Equal(t, model.RegionRamallah, got[0].Region)
	})

	t.Run("recent communications honors limit", func(t *testing.T) {
		got, err := repo.RecentCommunications(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("most active customers ranked by log count", func(t *testing.T) {
		got, err := repo.MostActiveCustomers(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Busy Co", got[0].CompanyName)
		assert.Equal(t, int64(3), got[0].CommunicationCount)
		assert.Equal(t, "Quiet Co", got[1].CompanyName)
		assert.Equal(t, int64(1), got[1].CommunicationCount)
	})
}

func TestCustomerRepository_TransactionRollback(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	logRepo := NewCommunicationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	sentinel := errors.New("boom")

	err := db.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := repo.Create(ctx, newTestCustomer(model.RegionJenin, "Doomed Co", now))
		require.NoError(t, err)

		_, err = logRepo.Create(ctx, &model.CommunicationLog{
			CustomerID: created.ID,
			Details:    "never persisted",
			LoggedAt:   now,
		})
		require.NoError(t, err)

		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, total, "rolled back customer must not persist")

	logs, err := logRepo.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, logs, "rolled back log must not persist")
}
