package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eco_rewards/model"
)

// TripService carries the thin trip/itinerary lifecycle the settlement path
// depends on: trips start active, itineraries arrive as proposals carrying
// the external generator's total carbon estimate, and accepting one demotes
// any previously accepted proposal for the same trip.
type TripService struct {
	db *gorm.DB
}

func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

func (s *TripService) CreateTrip(ctx context.Context, userID, destination string) (*model.Trip, error) {
	var owner model.Profile
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	trip := model.Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Destination: destination,
		Status:      model.TripStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// ProposeItinerary attaches a proposal to an active trip. carbonFootprintKg
// is the generator's total estimate; the core never looks at the per-day
// breakdown.
func (s *TripService) ProposeItinerary(ctx context.Context, tripID string, guideID *string, carbonFootprintKg float64) (*model.Itinerary, error) {
	var trip model.Trip
	if err := s.db.WithContext(ctx).First(&trip, "id = ?", tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.Status != model.TripStatusActive {
		return nil, ErrTripNotActive
	}
	itinerary := model.Itinerary{
		ID:                uuid.NewString(),
		TripID:            tripID,
		GuideID:           guideID,
		CarbonFootprintKg: carbonFootprintKg,
		Status:            model.ItineraryStatusProposed,
	}
	if err := s.db.WithContext(ctx).Create(&itinerary).Error; err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// AcceptItinerary marks one proposal accepted. Any other accepted itinerary
// of the same trip is rejected in the same transaction, so at most one
// itinerary per trip ever holds "accepted".
func (s *TripService) AcceptItinerary(ctx context.Context, itineraryID string) (*model.Itinerary, error) {
	var itinerary model.Itinerary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&itinerary, "id = ?", itineraryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItineraryNotFound
			}
			return err
		}
		if err := tx.Model(&model.Itinerary{}).
			Where("trip_id = ? AND status = ? AND id <> ?", itinerary.TripID, model.ItineraryStatusAccepted, itinerary.ID).
			Update("status", model.ItineraryStatusRejected).Error; err != nil {
			return err
		}
		if err := tx.Model(&itinerary).Update("status", model.ItineraryStatusAccepted).Error; err != nil {
			return err
		}
		itinerary.Status = model.ItineraryStatusAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}
