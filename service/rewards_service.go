package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/eco_rewards/model"
	"github.com/eco_rewards/repository"
)

// RewardsService is the read-side composition layer: off-chain truth (profile
// aggregates, settlement ledger, bound address) next to on-chain truth
// (recent transactions of the bound address). It performs no writes.
type RewardsService struct {
	profiles     *repository.ProfileRepository
	records      *repository.CarbonRecordRepository
	scanner      *Scanner
	windowBlocks uint64
	maxResults   int
}

func NewRewardsService(profiles *repository.ProfileRepository, records *repository.CarbonRecordRepository,
	scanner *Scanner, windowBlocks uint64, maxResults int) *RewardsService {
	return &RewardsService{
		profiles:     profiles,
		records:      records,
		scanner:      scanner,
		windowBlocks: windowBlocks,
		maxResults:   maxResults,
	}
}

// View assembles the rewards view for one user. With no bound address the
// chain portion is empty, not an error. A failing chain scan degrades the
// view instead of failing it: aggregates and ledger are still returned, with
// the scan error noted.
func (s *RewardsService) View(ctx context.Context, userID string) (*model.RewardsView, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	records, err := s.records.ListByTraveler(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.RewardsView{
		Profile:       profile,
		WalletAddress: profile.WalletAddress,
		Records:       records,
		Transactions:  []model.ChainTransaction{},
	}
	if profile.WalletAddress == nil {
		return view, nil
	}

	txs, err := s.scanner.ScanRecent(ctx, *profile.WalletAddress, s.windowBlocks, s.maxResults)
	if err != nil {
		log.Printf("rewards view: chain scan for user %s failed: %v", userID, err)
		view.ChainError = err.Error()
		return view, nil
	}
	view.Transactions = txs
	return view, nil
}
