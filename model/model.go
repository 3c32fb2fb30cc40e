package model

import (
	"time"

	"gorm.io/gorm"
)

// Trip status values. Transition active -> completed is one-way and is
// performed only by the settlement service.
const (
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
)

// Itinerary status values. At most one itinerary per trip holds "accepted".
const (
	ItineraryStatusProposed = "proposed"
	ItineraryStatusAccepted = "accepted"
	ItineraryStatusRejected = "rejected"
)

// 用户画像表（profiles）：累计值只增不减
type Profile struct {
	ID                 string    `gorm:"primaryKey;size:64" json:"id"`
	DisplayName        string    `gorm:"size:128" json:"display_name"`
	WalletAddress      *string   `gorm:"size:64;uniqueIndex" json:"wallet_address"`
	TotalCarbonSavedKg float64   `gorm:"not null;default:0" json:"total_carbon_saved_kg"`
	TotalTrips         int64     `gorm:"not null;default:0" json:"total_trips"`
	EcoPoints          int64     `gorm:"not null;default:0" json:"eco_points"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Trip struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	UserID            string    `gorm:"size:64;index;not null" json:"user_id"`
	Destination       string    `gorm:"size:256" json:"destination"`
	Status            string    `gorm:"size:20;not null" json:"status"`
	CarbonFootprintKg *float64  `json:"carbon_footprint_kg"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Itinerary struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	TripID            string    `gorm:"size:64;index;not null" json:"trip_id"`
	GuideID           *string   `gorm:"size:64" json:"guide_id"`
	CarbonFootprintKg float64   `gorm:"not null" json:"carbon_footprint_kg"`
	Status            string    `gorm:"size:20;not null" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// 碳积分结算流水表（carbon_records）：append-only，每个 trip 至多一条。
// The unique index on trip_id is the serialization point that makes
// settlement a non-repeatable event under concurrent callers.
type CarbonRecord struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	TripID          string    `gorm:"size:64;uniqueIndex;not null" json:"trip_id"`
	ItineraryID     string    `gorm:"size:64;not null" json:"itinerary_id"`
	TravelerID      string    `gorm:"size:64;index;not null" json:"traveler_id"`
	GuideID         *string   `gorm:"size:64" json:"guide_id"`
	CarbonSavedKg   float64   `gorm:"not null" json:"carbon_saved_kg"`
	EcoPointsEarned int64     `gorm:"not null" json:"eco_points_earned"`
	IsVerified      bool      `gorm:"not null" json:"is_verified"`
	VerifiedAt      time.Time `json:"verified_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// helper: create tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Profile{}, &Trip{}, &Itinerary{}, &CarbonRecord{})
}
