package model

import (
	"time"
)

// Chain transaction direction relative to the queried address.
const (
	DirectionSend    = "send"
	DirectionReceive = "receive"
)

// ChainTransaction is a transient projection of on-chain state, rebuilt from
// scratch on every scan. It is never persisted.
type ChainTransaction struct {
	Hash        string    `json:"hash"`
	Direction   string    `json:"direction"`
	AmountWei   string    `json:"amount_wei"` // decimal string, avoids float precision loss
	Counterpart string    `json:"counterpart"`
	BlockNumber uint64    `json:"block_number"`
	Timestamp   time.Time `json:"timestamp"`
}

// RewardsView combines off-chain truth (profile aggregates, bound address)
// with on-chain truth (recent transactions of the bound address). Read-only.
type RewardsView struct {
	Profile       *Profile           `json:"profile"`
	WalletAddress *string            `json:"wallet_address"`
	Records       []CarbonRecord     `json:"records"`
	Transactions  []ChainTransaction `json:"transactions"`
	ChainError    string             `json:"chain_error,omitempty"`
}
