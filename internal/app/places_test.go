package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/internal/app"
	"placebook/internal/domain"
)

func newPlaceService() (*app.PlaceService, *fakePlaceRepo, *fakeLocationRepo, *fakeCache) {
	locs := newFakeLocationRepo()
	places := newFakePlaceRepo(locs)
	cache := &fakeCache{}
	return app.NewPlaceService(places, locs, cache, 10*time.Minute), places, locs, cache
}

func TestPlaceSave_CreatesPlaceWithLocation(t *testing.T) {
	svc, places, locs, _ := newPlaceService()

	v, err := svc.Save(context.Background(), domain.PlaceInput{
		Name:          "Loft",
		Specification: "studio",
		Price:         ptr(50.0),
		Address:       ptr("1 Main St"),
		City:          ptr("Amman"),
	})
	require.NoError(t, err)
	require.NotZero(t, v.ID)
	require.NotNil(t, v.LocationID)
	assert.Equal(t, "1 Main St", *v.Address)

	loc, err := locs.GetByPlace(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, loc.PlaceID)
	_, err = places.Get(context.Background(), v.ID)
	require.NoError(t, err)
}

func TestPlaceSave_RequiresName(t *testing.T) {
	svc, _, _, _ := newPlaceService()

	_, err := svc.Save(context.Background(), domain.PlaceInput{Specification: "studio"})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestPlaceUpdate_KeepsStoredLocationFields(t *testing.T) {
	svc, _, _, _ := newPlaceService()

	v, err := svc.Save(context.Background(), domain.PlaceInput{
		Name:          "Loft",
		Specification: "studio",
		Address:       ptr("1 Main St"),
		City:          ptr("Amman"),
		Latitude:      ptr("31.95"),
	})
	require.NoError(t, err)

	// only the city is sent; address and latitude must survive
	out, err := svc.Update(context.Background(), v.ID, domain.PlaceInput{
		Name:          "Loft",
		Specification: "studio",
		City:          ptr("Irbid"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.City)
	assert.Equal(t, "Irbid", *out.City)
	require.NotNil(t, out.Address)
	assert.Equal(t, "1 Main St", *out.Address)
	require.NotNil(t, out.Latitude)
	assert.Equal(t, "31.95", *out.Latitude)
}

func TestPlaceUpdate_RecreatesDeletedLocation(t *testing.T) {
	svc, _, locs, _ := newPlaceService()

	v, err := svc.Save(context.Background(), domain.PlaceInput{
		Name:          "Loft",
		Specification: "studio",
		Address:       ptr("1 Main St"),
		City:          ptr("Amman"),
	})
	require.NoError(t, err)
	require.NotNil(t, v.LocationID)
	require.NoError(t, locs.Delete(context.Background(), *v.LocationID))

	out, err := svc.Update(context.Background(), v.ID, domain.PlaceInput{
		Name:          "Loft",
		Specification: "studio",
		Address:       ptr("2 Side St"),
		City:          ptr("Irbid"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.LocationID)
	assert.NotZero(t, *out.LocationID)
	assert.Equal(t, "2 Side St", *out.Address)

	loc, err := locs.GetByPlace(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, loc.ID, *out.LocationID)
	assert.Equal(t, "Irbid", loc.City)
}

func TestPlaceUpdate_MissingPlace(t *testing.T) {
	svc, _, _, _ := newPlaceService()

	_, err := svc.Update(context.Background(), 42, domain.PlaceInput{Name: "x", Specification: "y"})
	assert.True(t, domain.IsNotFound(err))
}

func TestPlaceGet_CacheMissThenHit(t *testing.T) {
	svc, places, _, _ := newPlaceService()

	v, err := svc.Save(context.Background(), domain.PlaceInput{Name: "Loft", Specification: "studio"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)

	// mutate the repo to prove the second read is served from cache
	p := places.places[v.ID]
	p.Name = "SHOULD NOT SEE THIS"
	places.places[v.ID] = p

	got, err = svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)
}

func TestPlaceUpdate_EvictsCache(t *testing.T) {
	svc, _, _, cache := newPlaceService()

	v, err := svc.Save(context.Background(), domain.PlaceInput{Name: "Loft", Specification: "studio"})
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), v.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), v.ID, domain.PlaceInput{Name: "Loft 2", Specification: "studio"})
	require.NoError(t, err)
	assert.NotEmpty(t, cache.dels)

	got, err := svc.Get(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft 2", got.Name)
}
