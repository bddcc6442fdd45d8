package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/logger"
)

// CurrentPSBT is what a buyer may see of the ladder at CurrentBlock.
// Rung is nil when nothing can be bought, Reason then says why.
type CurrentPSBT struct {
	Auction       *entity.Auction
	CurrentBlock  int64
	Rung          *entity.PriceRung
	Reason        string
	StartsAtBlock *int64
}

// GetCurrentPSBT returns the rung for the current block, or the final rung after end_block
// until the cleanup window closes. Rungs of future blocks are never returned.
func (u *Usecase) GetCurrentPSBT(ctx context.Context, auctionID int64) (*CurrentPSBT, error) {
	auction, err := u.auctionDg.GetAuctionByID(ctx, auctionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auction by id")
	}

	height, err := u.btcClient.CurrentHeight(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get current block height", err)
		return nil, errs.NewPublicErrorKind(errs.LedgerUnavailable, "Unable to get current block height")
	}

	result := &CurrentPSBT{
		Auction:      auction,
		CurrentBlock: height,
	}
	switch {
	case height > auction.EndBlock && height >= auction.CleanupBlock():
		result.Reason = "Auction has ended and is in cleanup period"
		return result, nil
	case height < auction.StartBlock:
		result.Reason = "Auction has not started yet"
		result.StartsAtBlock = &auction.StartBlock
		return result, nil
	case auction.Status == entity.StatusSold || auction.Status == entity.StatusClosed:
		result.Reason = fmt.Sprintf("Auction is %s", auction.Status)
		return result, nil
	}

	target := min(height, auction.EndBlock)
	rung, err := u.auctionDg.GetPriceRung(ctx, auction.ID, target)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errs.NewPublicErrorKind(errs.NotFound, "No PSBT available for block %d", target)
		}
		return nil, errors.Wrap(err, "failed to get price rung")
	}
	result.Rung = rung
	return result, nil
}
