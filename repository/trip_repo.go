package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eco_rewards/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListByUser(ctx context.Context, userID string) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

type ItineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

func (r *ItineraryRepository) FindByID(ctx context.Context, id string) (*model.Itinerary, error) {
	var itinerary model.Itinerary
	if err := r.db.WithContext(ctx).First(&itinerary, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func (r *ItineraryRepository) ListByTrip(ctx context.Context, tripID string) ([]model.Itinerary, error) {
	var itineraries []model.Itinerary
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at asc").
		Find(&itineraries).Error; err != nil {
		return nil, err
	}
	return itineraries, nil
}
