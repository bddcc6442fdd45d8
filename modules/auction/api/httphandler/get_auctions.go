package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getAuctionsRequest struct {
	Status string `query:"status"`
}

func (r *getAuctionsRequest) Validate() error {
	if r.Status != "" && !entity.Status(r.Status).IsValid() {
		return errs.NewPublicError("Invalid status filter")
	}
	return nil
}

type getAuctionsResponse struct {
	Success  bool            `json:"success"`
	Count    int             `json:"count"`
	Auctions []auctionResult `json:"auctions"`
}

func (h *HttpHandler) GetAuctions(ctx *fiber.Ctx) (err error) {
	var req getAuctionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	var statuses []entity.Status
	if req.Status != "" {
		statuses = append(statuses, entity.Status(req.Status))
	}
	auctions, err := h.usecase.GetAuctions(ctx.UserContext(), statuses...)
	if err != nil {
		return errors.Wrap(err, "error during GetAuctions")
	}

	return errors.WithStack(ctx.JSON(getAuctionsResponse{
		Success: true,
		Count:   len(auctions),
		Auctions: lo.Map(auctions, func(a *entity.Auction, _ int) auctionResult {
			return mapAuction(a)
		}),
	}))
}
