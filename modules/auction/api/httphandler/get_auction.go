package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getAuctionRequest struct {
	ID int64 `params:"id"`
}

func (r *getAuctionRequest) Validate() error {
	if r.ID <= 0 {
		return errs.NewPublicErrorKind(errs.NotFound, "Auction not found")
	}
	return nil
}

func parseAuctionID(ctx *fiber.Ctx) (int64, error) {
	var req getAuctionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return 0, errs.NewPublicErrorKind(errs.NotFound, "Auction not found")
	}
	if err := req.Validate(); err != nil {
		return 0, errors.WithStack(err)
	}
	return req.ID, nil
}

type getAuctionResponse struct {
	Success bool          `json:"success"`
	Auction auctionResult `json:"auction"`
}

// GetAuction returns auction metadata. The price ladder is never included.
func (h *HttpHandler) GetAuction(ctx *fiber.Ctx) (err error) {
	id, err := parseAuctionID(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	auction, err := h.usecase.GetAuctionByID(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicErrorKind(errs.NotFound, "Auction not found")
		}
		return errors.Wrap(err, "error during GetAuctionByID")
	}

	return errors.WithStack(ctx.JSON(getAuctionResponse{
		Success: true,
		Auction: mapAuction(auction),
	}))
}
