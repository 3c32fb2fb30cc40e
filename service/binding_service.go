package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/eco_rewards/model"
	"github.com/eco_rewards/repository"
)

// BindingService maintains the 1:1 mapping between a profile and an external
// wallet address. The unique index on profiles.wallet_address is the
// serialization point: two concurrent binds of the same fresh address cannot
// both succeed.
type BindingService struct {
	db       *gorm.DB
	profiles *repository.ProfileRepository
}

func NewBindingService(db *gorm.DB, profiles *repository.ProfileRepository) *BindingService {
	return &BindingService{db: db, profiles: profiles}
}

// Bind attaches address to the user's profile. Re-binding the same address to
// the same user is a no-op success. Returns the lowercase-normalized address.
func (s *BindingService) Bind(ctx context.Context, userID, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	normalized := strings.ToLower(address)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var other model.Profile
		err := tx.Where("wallet_address = ? AND id <> ?", normalized, userID).First(&other).Error
		if err == nil {
			return ErrAddressAlreadyBound
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Model(&model.Profile{}).Where("id = ?", userID).Update("wallet_address", normalized)
		if res.Error != nil {
			// the unique index wins races the pre-check cannot see
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrAddressAlreadyBound
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// Unbind clears the bound address unconditionally. Unbinding a user with
// nothing bound is not an error.
func (s *BindingService) Unbind(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", userID).
		Update("wallet_address", nil).Error
}

// GetBinding returns the bound address, or nil when nothing is bound.
func (s *BindingService) GetBinding(ctx context.Context, userID string) (*string, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p.WalletAddress, nil
}
