package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getCurrentPSBTResponse struct {
	Success       bool        `json:"success"`
	CurrentBlock  int64       `json:"current_block"`
	AuctionID     int64       `json:"auction_id"`
	AuctionStatus string      `json:"auction_status"`
	PSBT          *psbtResult `json:"psbt"`
	Message       string      `json:"message,omitempty"`
	StartsAtBlock *int64      `json:"starts_at_block,omitempty"`
}

func (h *HttpHandler) GetCurrentPSBT(ctx *fiber.Ctx) (err error) {
	id, err := parseAuctionID(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	current, err := h.usecase.GetCurrentPSBT(ctx.UserContext(), id)
	if err != nil {
		// a public NotFound already names the missing rung
		if e := new(errs.PublicError); !errors.As(err, &e) && errors.Is(err, errs.NotFound) {
			return errs.NewPublicErrorKind(errs.NotFound, "Auction not found")
		}
		return errors.WithStack(err)
	}

	resp := getCurrentPSBTResponse{
		Success:       true,
		CurrentBlock:  current.CurrentBlock,
		AuctionID:     current.Auction.ID,
		AuctionStatus: current.Auction.Status.String(),
		Message:       current.Reason,
		StartsAtBlock: current.StartsAtBlock,
	}
	if current.Rung != nil {
		resp.PSBT = new(psbtResult)
		*resp.PSBT = mapPriceRung(current.Rung)
	}
	return errors.WithStack(ctx.JSON(resp))
}
