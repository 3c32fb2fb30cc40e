package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eco_rewards/model"
)

func TestEcoPointsForCarbon(t *testing.T) {
	cases := []struct {
		kg   float64
		want int64
	}{
		{12.3, 123},
		{0, 0},
		{0.04, 0},
		{0.06, 1},
		{25, 250},
		{10, 100},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EcoPointsForCarbon(tc.kg), "kg=%v", tc.kg)
	}
}

func TestSettleCreditsExactly(t *testing.T) {
	db := setupDB(t)
	svc := NewSettlementService(db)
	p := createProfile(t, db, "Alice")
	// pre-existing aggregates: accumulation must be exact, not absolute
	require.NoError(t, db.Model(p).Updates(map[string]interface{}{
		"total_carbon_saved_kg": 50.0,
		"total_trips":           3,
		"eco_points":            500,
	}).Error)
	trip := createActiveTrip(t, db, p.ID)
	it := createItinerary(t, db, trip.ID, 10, model.ItineraryStatusAccepted)

	rec, err := svc.Settle(context.Background(), trip.ID, it.ID)
	require.NoError(t, err)
	require.Equal(t, trip.ID, rec.TripID)
	require.Equal(t, it.ID, rec.ItineraryID)
	require.Equal(t, p.ID, rec.TravelerID)
	require.Equal(t, 10.0, rec.CarbonSavedKg)
	require.Equal(t, int64(100), rec.EcoPointsEarned)
	require.True(t, rec.IsVerified)
	require.False(t, rec.VerifiedAt.IsZero())

	var gotTrip model.Trip
	require.NoError(t, db.First(&gotTrip, "id = ?", trip.ID).Error)
	require.Equal(t, model.TripStatusCompleted, gotTrip.Status)
	require.NotNil(t, gotTrip.CarbonFootprintKg)
	require.Equal(t, 10.0, *gotTrip.CarbonFootprintKg)

	var gotProfile model.Profile
	require.NoError(t, db.First(&gotProfile, "id = ?", p.ID).Error)
	require.Equal(t, 60.0, gotProfile.TotalCarbonSavedKg)
	require.Equal(t, int64(4), gotProfile.TotalTrips)
	require.Equal(t, int64(600), gotProfile.EcoPoints)
}

func TestSettleTwiceFailsAndChangesNothing(t *testing.T) {
	db := setupDB(t)
	svc := NewSettlementService(db)
	p := createProfile(t, db, "Alice")
	trip := createActiveTrip(t, db, p.ID)
	it := createItinerary(t, db, trip.ID, 25, model.ItineraryStatusAccepted)

	_, err := svc.Settle(context.Background(), trip.ID, it.ID)
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), trip.ID, it.ID)
	require.ErrorIs(t, err, ErrAlreadySettled)

	var gotProfile model.Profile
	require.NoError(t, db.First(&gotProfile, "id = ?", p.ID).Error)
	require.Equal(t, 25.0, gotProfile.TotalCarbonSavedKg)
	require.Equal(t, int64(1), gotProfile.TotalTrips)
	require.Equal(t, int64(250), gotProfile.EcoPoints)

	var recordCount int64
	require.NoError(t, db.Model(&model.CarbonRecord{}).Where("trip_id = ?", trip.ID).Count(&recordCount).Error)
	require.Equal(t, int64(1), recordCount)
}

func TestSettlePreconditions(t *testing.T) {
	db := setupDB(t)
	svc := NewSettlementService(db)
	p := createProfile(t, db, "Alice")
	trip := createActiveTrip(t, db, p.ID)
	it := createItinerary(t, db, trip.ID, 5, model.ItineraryStatusAccepted)

	otherTrip := createActiveTrip(t, db, p.ID)

	_, err := svc.Settle(context.Background(), "missing", it.ID)
	require.ErrorIs(t, err, ErrTripNotFound)

	_, err = svc.Settle(context.Background(), trip.ID, "missing")
	require.ErrorIs(t, err, ErrItineraryNotFound)

	_, err = svc.Settle(context.Background(), otherTrip.ID, it.ID)
	require.ErrorIs(t, err, ErrItineraryNotForTrip)

	// failed attempts left everything untouched
	var gotProfile model.Profile
	require.NoError(t, db.First(&gotProfile, "id = ?", p.ID).Error)
	require.Equal(t, 0.0, gotProfile.TotalCarbonSavedKg)
	require.Equal(t, int64(0), gotProfile.TotalTrips)
	var recordCount int64
	require.NoError(t, db.Model(&model.CarbonRecord{}).Count(&recordCount).Error)
	require.Equal(t, int64(0), recordCount)
}

func TestSettleConcurrentSingleWinner(t *testing.T) {
	db := setupDB(t)
	svc := NewSettlementService(db)
	p := createProfile(t, db, "Alice")
	trip := createActiveTrip(t, db, p.ID)
	it := createItinerary(t, db, trip.ID, 8, model.ItineraryStatusAccepted)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Settle(context.Background(), trip.ID, it.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrAlreadySettled)
		}
	}
	require.Equal(t, 1, winners)

	var recordCount int64
	require.NoError(t, db.Model(&model.CarbonRecord{}).Where("trip_id = ?", trip.ID).Count(&recordCount).Error)
	require.Equal(t, int64(1), recordCount)

	var gotProfile model.Profile
	require.NoError(t, db.First(&gotProfile, "id = ?", p.ID).Error)
	require.Equal(t, 8.0, gotProfile.TotalCarbonSavedKg)
	require.Equal(t, int64(1), gotProfile.TotalTrips)
	require.Equal(t, int64(80), gotProfile.EcoPoints)
}
