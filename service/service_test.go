package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eco_rewards/model"
)

// setupDB opens a per-test sqlite database. _txlock=immediate serializes
// write transactions up front so concurrency tests behave like the unique
// constraints would under postgres.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	return db
}

func createProfile(t *testing.T, db *gorm.DB, name string) *model.Profile {
	t.Helper()
	p := &model.Profile{ID: uuid.NewString(), DisplayName: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createActiveTrip(t *testing.T, db *gorm.DB, userID string) *model.Trip {
	t.Helper()
	trip := &model.Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Destination: "Kyoto",
		Status:      model.TripStatusActive,
	}
	require.NoError(t, db.Create(trip).Error)
	return trip
}

func createItinerary(t *testing.T, db *gorm.DB, tripID string, carbonKg float64, status string) *model.Itinerary {
	t.Helper()
	it := &model.Itinerary{
		ID:                uuid.NewString(),
		TripID:            tripID,
		CarbonFootprintKg: carbonKg,
		Status:            status,
	}
	require.NoError(t, db.Create(it).Error)
	return it
}
