package services

import (
	"context"
	"testing"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerServiceOnDB(t *testing.T) *CustomerService {
	db := setupTestDB(t)
	return NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewCommunicationRepository(db),
		repository.NewFileRepository(db),
	)
}

// Walks the full lifecycle against a real store: create without an initial
// communication, list, log one communication, list again.
func TestCustomerLifecycleScenario(t *testing.T) {
	svc := newCustomerServiceOnDB(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CustomerCreateRequest{
		Region:      model.RegionRamallah,
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	listed, err := svc.ListByRegion(ctx, model.RegionRamallah)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, int64(0), listed[0].CommunicationCount)
	assert.Nil(t, listed[0].LastCommunicationAt)

	before, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.AddCommunication(ctx, model.CommunicationCreateRequest{
		CustomerID: created.ID,
		Details:    "Called, no answer",
	})
	require.NoError(t, err)

	logs, err := svc.ListCommunications(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Called, no answer", logs[0].Details)

	after, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, after.LastUpdatedAt.Before(before.LastUpdatedAt),
		"logging a communication must not move last_updated backwards")

	listed, err = svc.ListByRegion(ctx, model.RegionRamallah)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].CommunicationCount)
	require.NotNil(t, listed[0].LastCommunicationAt)
}

func TestCustomerCreate_EveryRegionListsBack(t *testing.T) {
	svc := newCustomerServiceOnDB(t)
	ctx := context.Background()

	for _, region := range model.Regions {
		created, err := svc.Create(ctx, model.CustomerCreateRequest{
			Region:               region,
			CompanyName:          "Branch " + string(region),
			InitialCommunication: "opening note",
		})
		require.NoError(t, err)

		listed, err := svc.ListByRegion(ctx, region)
		require.NoError(t, err)
		require.Len(t, listed, 1, "exactly one customer expected in %s", region)
		assert.Equal(t, created.ID, listed[0].ID)
		assert.Equal(t, int64(1), listed[0].CommunicationCount)
	}
}

func TestCustomerCreate_FailedValidationPersistsNothing(t *testing.T) {
	svc := newCustomerServiceOnDB(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CustomerCreateRequest{
		Region:               model.RegionNablus,
		CompanyName:          "   ",
		InitialCommunication: "should never land",
	})
	require.ErrorIs(t, err, model.ErrCompanyNameRequired)

	_, err = svc.Create(ctx, model.CustomerCreateRequest{
		Region:      "atlantis",
		CompanyName: "Acme",
	})
	require.ErrorIs(t, err, model.ErrInvalidRegion)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCustomers)
	assert.Empty(t, stats.MostRecentCommunications)
}

func TestAddCommunication_UnknownCustomerTouchesNothing(t *testing.T) {
	svc := newCustomerServiceOnDB(t)
	ctx := context.Background()

	bystander, err := svc.Create(ctx, model.CustomerCreateRequest{
		Region:      model.RegionJericho,
		CompanyName: "Bystander Co",
	})
	require.NoError(t, err)

	_, err = svc.AddCommunication(ctx, model.CommunicationCreateRequest{
		CustomerID: bystander.ID + 1000,
		Details:    "ghost call",
	})
	require.ErrorIs(t, err, model.ErrCustomerNotFound)

	got, err := svc.Get(ctx, bystander.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUpdatedAt.Equal(bystander.LastUpdatedAt))
}

func TestStatistics_TotalMatchesRegionSum(t *testing.T) {
	svc := newCustomerServiceOnDB(t)
	ctx := context.Background()

	seed := []struct {
		region model.Region
		n      int
	}{
		{model.RegionHebron, 3},
		{model.RegionSalfit, 1},
		{model.RegionTubas, 2},
	}
	for _, s := range seed {
		for i := 0; i < s.n; i++ {
			_, err := svc.Create(ctx, model.CustomerCreateRequest{
				Region:      s.region,
				CompanyName: "Seeded",
			})
			require.NoError(t, err)
		}
	}

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)

	assert.Len(t, stats.PerRegionCounts, len(model.Regions))
	var sum int64
	for _, c := range stats.PerRegionCounts {
		sum += c
	}
	assert.Equal(t, stats.TotalCustomers, sum)
	assert.Equal(t, int64(6), stats.TotalCustomers)
}
