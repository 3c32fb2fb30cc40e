package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eco_rewards/model"
)

// CarbonRecordRepository reads the append-only settlement ledger. Records are
// written only by the settlement service, inside its transaction.
type CarbonRecordRepository struct {
	db *gorm.DB
}

func NewCarbonRecordRepository(db *gorm.DB) *CarbonRecordRepository {
	return &CarbonRecordRepository{db: db}
}

func (r *CarbonRecordRepository) FindByTrip(ctx context.Context, tripID string) (*model.CarbonRecord, error) {
	var record model.CarbonRecord
	if err := r.db.WithContext(ctx).First(&record, "trip_id = ?", tripID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *CarbonRecordRepository) ListByTraveler(ctx context.Context, travelerID string) ([]model.CarbonRecord, error) {
	var records []model.CarbonRecord
	if err := r.db.WithContext(ctx).
		Where("traveler_id = ?", travelerID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
