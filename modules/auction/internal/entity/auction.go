package entity

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
)

type Auction struct {
	ID        int64
	AssetName string
	AssetQty  decimal.Decimal
	UTXO      wire.OutPoint

	StartBlock     int64
	EndBlock       int64
	BlocksAfterEnd int64 // cleanup window after EndBlock

	// prices are in sats
	StartPrice     int64
	EndPrice       int64
	PriceDecrement int64

	Status Status

	// spend observation, nil until known
	SpentTxHash *chainhash.Hash
	SpentBlock  *int64
	SpentAt     *time.Time
	Recipient   *string
	Seller      *string

	CreatedAt time.Time
}

// CleanupBlock is the first block at which a finished auction expires.
func (a *Auction) CleanupBlock() int64 {
	return a.EndBlock + a.BlocksAfterEnd
}

// MissingSpendDetails reports whether a spend was recorded without its block, time or recipient.
func (a *Auction) MissingSpendDetails() bool {
	return a.SpentTxHash != nil && (a.SpentBlock == nil || a.SpentAt == nil || a.Recipient == nil)
}

type PriceRung struct {
	ID          int64
	AuctionID   int64
	BlockNumber int64
	Price       int64 // sats
	PSBT        string
}

// RungPrices returns the distinct prices of the ladder.
func RungPrices(rungs []*PriceRung) map[int64]struct{} {
	prices := make(map[int64]struct{}, len(rungs))
	for _, rung := range rungs {
		prices[rung.Price] = struct{}{}
	}
	return prices
}

// DerivePricing returns the start price, end price and average per block decrement of a ladder
// sorted by block number.
func DerivePricing(rungs []*PriceRung) (start, end, decrement int64) {
	if len(rungs) == 0 {
		return 0, 0, 0
	}
	first, last := rungs[0], rungs[len(rungs)-1]
	start, end = first.Price, last.Price
	if blocks := last.BlockNumber - first.BlockNumber; blocks > 0 {
		decrement = (start - end) / blocks
	}
	return start, end, decrement
}
