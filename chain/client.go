package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Transaction is the slice of an on-chain transaction the indexer cares about.
// From may be empty when sender recovery fails; To is empty for contract
// creation transactions.
type Transaction struct {
	Hash  string
	From  string
	To    string
	Value *big.Int
	Index int
}

// Block carries a block's timestamp plus its full transaction list.
type Block struct {
	Number       uint64
	Timestamp    uint64
	Transactions []Transaction
}

// Client is the read-only view of a blockchain node the indexer depends on.
type Client interface {
	// HeadBlockNumber returns the current chain head.
	HeadBlockNumber(ctx context.Context) (uint64, error)
	// BlockByNumber fetches one block including its transactions.
	BlockByNumber(ctx context.Context, number uint64) (*Block, error)
}

// EthClient implements Client on top of go-ethereum's RPC client.
type EthClient struct {
	ec     *ethclient.Client
	signer types.Signer
}

// Dial connects to an Ethereum JSON-RPC endpoint. chainID is needed to
// recover sender addresses from raw transactions.
func Dial(rpcURL string, chainID int64) (*EthClient, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}
	return &EthClient{
		ec:     ec,
		signer: types.LatestSignerForChainID(big.NewInt(chainID)),
	}, nil
}

func (c *EthClient) HeadBlockNumber(ctx context.Context) (uint64, error) {
	return c.ec.BlockNumber(ctx)
}

func (c *EthClient) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	b, err := c.ec.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return nil, err
	}
	out := &Block{
		Number:       b.NumberU64(),
		Timestamp:    b.Time(),
		Transactions: make([]Transaction, 0, len(b.Transactions())),
	}
	for i, tx := range b.Transactions() {
		t := Transaction{
			Hash:  tx.Hash().Hex(),
			Value: tx.Value(),
			Index: i,
		}
		if from, err := types.Sender(c.signer, tx); err == nil {
			t.From = from.Hex()
		}
		if to := tx.To(); to != nil {
			t.To = to.Hex()
		}
		out.Transactions = append(out.Transactions, t)
	}
	return out, nil
}
