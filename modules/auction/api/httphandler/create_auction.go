package httphandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type createAuctionPSBT struct {
	BlockNumber *int64  `json:"block_number"`
	PriceSats   *int64  `json:"price_sats"`
	PSBTData    *string `json:"psbt_data"`
}

type createAuctionRequest struct {
	AssetName      *string             `json:"asset_name"`
	AssetQty       *decimal.Decimal    `json:"asset_qty"`
	UTXOTxID       *string             `json:"utxo_txid"`
	UTXOVout       *int64              `json:"utxo_vout"`
	StartBlock     *int64              `json:"start_block"`
	EndBlock       *int64              `json:"end_block"`
	BlocksAfterEnd *int64              `json:"blocks_after_end"`
	PSBTs          []createAuctionPSBT `json:"psbts"`
}

func (r *createAuctionRequest) Submission() validator.Submission {
	var rungs []validator.Rung
	if r.PSBTs != nil {
		rungs = lo.Map(r.PSBTs, func(p createAuctionPSBT, _ int) validator.Rung {
			return validator.Rung{
				BlockNumber: p.BlockNumber,
				PriceSats:   p.PriceSats,
				PSBT:        p.PSBTData,
			}
		})
	}
	return validator.Submission{
		AssetName:      r.AssetName,
		AssetQty:       r.AssetQty,
		UTXOTxID:       r.UTXOTxID,
		UTXOVout:       r.UTXOVout,
		StartBlock:     r.StartBlock,
		EndBlock:       r.EndBlock,
		BlocksAfterEnd: r.BlocksAfterEnd,
		Rungs:          rungs,
	}
}

type createAuctionResponse struct {
	Success   bool          `json:"success"`
	AuctionID int64         `json:"auction_id"`
	Message   string        `json:"message"`
	Auction   auctionResult `json:"auction"`
}

func (h *HttpHandler) CreateAuction(ctx *fiber.Ctx) (err error) {
	if len(ctx.Body()) == 0 {
		return errs.NewPublicError("No data provided")
	}
	var req createAuctionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "Invalid request body")
	}

	auction, err := h.usecase.CreateAuction(ctx.UserContext(), req.Submission())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(ctx.Status(http.StatusCreated).JSON(createAuctionResponse{
		Success:   true,
		AuctionID: auction.ID,
		Message:   "Auction created successfully",
		Auction:   mapAuction(auction),
	}))
}
