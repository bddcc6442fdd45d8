package httphandler

import (
	"encoding/json"
	"time"

	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/usecase"
	"github.com/samber/lo"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	apiKey  string
}

// New returns the auction API handler. apiKey guards auction submissions.
func New(usecase *usecase.Usecase, apiKey string) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		apiKey:  apiKey,
	}
}

type auctionResult struct {
	ID             int64       `json:"id"`
	AssetName      string      `json:"asset_name"`
	AssetQty       json.Number `json:"asset_qty"`
	UTXOTxID       string      `json:"utxo_txid"`
	UTXOVout       uint32      `json:"utxo_vout"`
	StartBlock     int64       `json:"start_block"`
	EndBlock       int64       `json:"end_block"`
	StartPriceSats int64       `json:"start_price_sats"`
	EndPriceSats   int64       `json:"end_price_sats"`
	PriceDecrement int64       `json:"price_decrement"`
	BlocksAfterEnd int64       `json:"blocks_after_end"`
	Status         string      `json:"status"`
	SpentTxID      *string     `json:"spent_txid"`
	SpentBlock     *int64      `json:"spent_block"`
	SpentAt        *time.Time  `json:"spent_at"`
	Recipient      *string     `json:"recipient"`
	Seller         *string     `json:"seller"`
	CreatedAt      time.Time   `json:"created_at"`
}

func mapAuction(a *entity.Auction) auctionResult {
	var spentTxID *string
	if a.SpentTxHash != nil {
		spentTxID = lo.ToPtr(a.SpentTxHash.String())
	}
	return auctionResult{
		ID:             a.ID,
		AssetName:      a.AssetName,
		AssetQty:       json.Number(a.AssetQty.String()),
		UTXOTxID:       a.UTXO.Hash.String(),
		UTXOVout:       a.UTXO.Index,
		StartBlock:     a.StartBlock,
		EndBlock:       a.EndBlock,
		StartPriceSats: a.StartPrice,
		EndPriceSats:   a.EndPrice,
		PriceDecrement: a.PriceDecrement,
		BlocksAfterEnd: a.BlocksAfterEnd,
		Status:         a.Status.String(),
		SpentTxID:      spentTxID,
		SpentBlock:     a.SpentBlock,
		SpentAt:        a.SpentAt,
		Recipient:      a.Recipient,
		Seller:         a.Seller,
		CreatedAt:      a.CreatedAt,
	}
}

type psbtResult struct {
	ID          int64  `json:"id"`
	AuctionID   int64  `json:"auction_id"`
	BlockNumber int64  `json:"block_number"`
	PriceSats   int64  `json:"price_sats"`
	PSBTData    string `json:"psbt_data"`
}

func mapPriceRung(r *entity.PriceRung) psbtResult {
	return psbtResult{
		ID:          r.ID,
		AuctionID:   r.AuctionID,
		BlockNumber: r.BlockNumber,
		PriceSats:   r.Price,
		PSBTData:    r.PSBT,
	}
}
