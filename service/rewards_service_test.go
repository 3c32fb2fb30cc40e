package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eco_rewards/chain"
	"github.com/eco_rewards/model"
	"github.com/eco_rewards/repository"
)

func TestRewardsViewNoBoundAddress(t *testing.T) {
	db := setupDB(t)
	p := createProfile(t, db, "Alice")

	client := &fakeChainClient{head: 10}
	rewards := NewRewardsService(repository.NewProfileRepository(db), repository.NewCarbonRecordRepository(db),
		NewScanner(client, 0), 10, 20)

	view, err := rewards.View(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, view.Profile.ID)
	require.Nil(t, view.WalletAddress)
	require.Empty(t, view.Transactions)
	require.Empty(t, view.ChainError)
	// no chain calls without a bound address
	require.Empty(t, client.fetched)
}

func TestRewardsViewCombinesLedgerAndChain(t *testing.T) {
	db := setupDB(t)
	p := createProfile(t, db, "Alice")
	trip := createActiveTrip(t, db, p.ID)
	it := createItinerary(t, db, trip.ID, 25, model.ItineraryStatusAccepted)

	_, err := NewSettlementService(db).Settle(context.Background(), trip.ID, it.ID)
	require.NoError(t, err)

	binding := NewBindingService(db, repository.NewProfileRepository(db))
	bound, err := binding.Bind(context.Background(), p.ID, testAddress)
	require.NoError(t, err)

	client := &fakeChainClient{
		head: 5,
		blocks: map[uint64]*chain.Block{
			5: makeBlock(5, 50, chain.Transaction{Hash: "0xin", From: otherAddr, To: testAddress, Value: wei(9)}),
			4: makeBlock(4, 40),
			3: makeBlock(3, 30),
		},
	}
	rewards := NewRewardsService(repository.NewProfileRepository(db), repository.NewCarbonRecordRepository(db),
		NewScanner(client, 0), 3, 20)

	view, err := rewards.View(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 25.0, view.Profile.TotalCarbonSavedKg)
	require.Equal(t, int64(250), view.Profile.EcoPoints)
	require.NotNil(t, view.WalletAddress)
	require.Equal(t, bound, *view.WalletAddress)
	require.Len(t, view.Records, 1)
	require.Equal(t, int64(250), view.Records[0].EcoPointsEarned)
	require.Len(t, view.Transactions, 1)
	require.Equal(t, model.DirectionReceive, view.Transactions[0].Direction)
}

func TestRewardsViewDegradesWhenChainDown(t *testing.T) {
	db := setupDB(t)
	p := createProfile(t, db, "Alice")
	binding := NewBindingService(db, repository.NewProfileRepository(db))
	_, err := binding.Bind(context.Background(), p.ID, testAddress)
	require.NoError(t, err)

	client := &fakeChainClient{headErr: errors.New("connection refused")}
	rewards := NewRewardsService(repository.NewProfileRepository(db), repository.NewCarbonRecordRepository(db),
		NewScanner(client, 0), 10, 20)

	view, err := rewards.View(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Profile)
	require.Empty(t, view.Transactions)
	require.True(t, strings.Contains(view.ChainError, "chain head unreachable"))
}

func TestRewardsViewUnknownUser(t *testing.T) {
	db := setupDB(t)
	rewards := NewRewardsService(repository.NewProfileRepository(db), repository.NewCarbonRecordRepository(db),
		NewScanner(&fakeChainClient{head: 1}, 0), 10, 20)

	_, err := rewards.View(context.Background(), "missing")
	require.ErrorIs(t, err, ErrProfileNotFound)
}
