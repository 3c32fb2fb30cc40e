package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eco_rewards/model"
)

// 兑换汇率：每节省 1kg CO₂ 发放 10 个 EcoPoints
const PointsPerKgSaved = 10

// EcoPointsForCarbon converts a carbon saving into reward points, rounding to
// the nearest integer (12.3kg -> 123, 0.04kg -> 0).
func EcoPointsForCarbon(carbonSavedKg float64) int64 {
	return int64(math.Round(carbonSavedKg * PointsPerKgSaved))
}

// SettlementService performs the one-time conversion of an accepted
// itinerary's carbon estimate into durable rewards: trip completion, profile
// aggregate increments, and one immutable CarbonRecord, all inside a single
// transaction that rolls back as a whole on any failure.
type SettlementService struct {
	db *gorm.DB
}

func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{db: db}
}

// Settle credits the trip owner for the itinerary's carbon estimate. A second
// call for the same trip fails with ErrAlreadySettled and changes nothing.
func (s *SettlementService) Settle(ctx context.Context, tripID, itineraryID string) (*model.CarbonRecord, error) {
	var record *model.CarbonRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip model.Trip
		if err := tx.First(&trip, "id = ?", tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		switch trip.Status {
		case model.TripStatusActive:
		case model.TripStatusCompleted:
			return ErrAlreadySettled
		default:
			return ErrTripNotActive
		}

		var itinerary model.Itinerary
		if err := tx.First(&itinerary, "id = ?", itineraryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItineraryNotFound
			}
			return err
		}
		if itinerary.TripID != trip.ID {
			return ErrItineraryNotForTrip
		}

		carbonSaved := itinerary.CarbonFootprintKg
		points := EcoPointsForCarbon(carbonSaved)

		// guarded transition: a concurrent settle that already flipped the
		// status makes this match zero rows
		res := tx.Model(&model.Trip{}).
			Where("id = ? AND status = ?", trip.ID, model.TripStatusActive).
			Updates(map[string]interface{}{
				"status":              model.TripStatusCompleted,
				"carbon_footprint_kg": carbonSaved,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySettled
		}

		// atomic increments, no read-then-write of the aggregates
		res = tx.Model(&model.Profile{}).
			Where("id = ?", trip.UserID).
			Updates(map[string]interface{}{
				"total_carbon_saved_kg": gorm.Expr("total_carbon_saved_kg + ?", carbonSaved),
				"total_trips":           gorm.Expr("total_trips + 1"),
				"eco_points":            gorm.Expr("eco_points + ?", points),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProfileNotFound
		}

		rec := model.CarbonRecord{
			ID:              uuid.NewString(),
			TripID:          trip.ID,
			ItineraryID:     itinerary.ID,
			TravelerID:      trip.UserID,
			GuideID:         itinerary.GuideID,
			CarbonSavedKg:   carbonSaved,
			EcoPointsEarned: points,
			IsVerified:      true,
			VerifiedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			// unique index on trip_id is the final arbiter under concurrency
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySettled
			}
			return err
		}
		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
