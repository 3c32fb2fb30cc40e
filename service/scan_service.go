package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"go.uber.org/ratelimit"

	"github.com/eco_rewards/chain"
	"github.com/eco_rewards/model"
)

// Scanner reconstructs a best-effort recent transaction history for a wallet
// address purely by walking blocks, with no dependence on a third-party
// transaction-history API. Every call re-derives the view from the current
// head; nothing is persisted between calls.
type Scanner struct {
	client  chain.Client
	limiter ratelimit.Limiter
}

// NewScanner wraps a chain client. blockFetchRate caps block fetches per
// second; zero or negative means unlimited.
func NewScanner(client chain.Client, blockFetchRate int) *Scanner {
	limiter := ratelimit.NewUnlimited()
	if blockFetchRate > 0 {
		limiter = ratelimit.New(blockFetchRate)
	}
	return &Scanner{client: client, limiter: limiter}
}

// ScanRecent scans the windowBlocks most recent blocks for transactions
// sent from or received by address. Per-block fetch failures are skipped;
// only a failed head lookup is fatal (ErrChainUnreachable). Cancelling ctx
// stops further fetches and returns whatever was collected so far. Results
// are sorted by descending block timestamp (ties by descending block number,
// then position in block) and truncated to maxResults.
func (s *Scanner) ScanRecent(ctx context.Context, address string, windowBlocks uint64, maxResults int) ([]model.ChainTransaction, error) {
	head, err := s.client.HeadBlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChainUnreachable, err)
	}

	queried := strings.ToLower(address)
	matched := make([]model.ChainTransaction, 0)

	s.visitWindow(ctx, head, windowBlocks, func(b *chain.Block) bool {
		blockTime := time.Unix(int64(b.Timestamp), 0).UTC()
		for _, tx := range b.Transactions {
			from := strings.ToLower(tx.From)
			to := strings.ToLower(tx.To)
			if from != queried && to != queried {
				continue
			}
			direction := model.DirectionReceive
			counterpart := from
			if from == queried {
				direction = model.DirectionSend
				counterpart = to
			}
			amount := "0"
			if tx.Value != nil {
				amount = tx.Value.String()
			}
			matched = append(matched, model.ChainTransaction{
				Hash:        tx.Hash,
				Direction:   direction,
				AmountWei:   amount,
				Counterpart: counterpart,
				BlockNumber: b.Number,
				Timestamp:   blockTime,
			})
		}
		return true
	})

	// newest first; stable sort keeps the in-block transaction order
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].BlockNumber > matched[j].BlockNumber
	})
	if maxResults > 0 && len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched, nil
}

// visitWindow walks blocks newest-first over [head-windowBlocks+1, head].
// Blocks that fail to fetch are logged and skipped. The walk ends early when
// ctx is cancelled or visit returns false.
func (s *Scanner) visitWindow(ctx context.Context, head, windowBlocks uint64, visit func(*chain.Block) bool) {
	if windowBlocks == 0 {
		return
	}
	lowest := uint64(0)
	if head+1 > windowBlocks {
		lowest = head + 1 - windowBlocks
	}
	for number := head; ; number-- {
		if ctx.Err() != nil {
			return
		}
		s.limiter.Take()
		block, err := s.client.BlockByNumber(ctx, number)
		if err != nil {
			log.Printf("scan: skipping block %d: %v", number, err)
		} else if !visit(block) {
			return
		}
		if number == lowest {
			return
		}
	}
}
