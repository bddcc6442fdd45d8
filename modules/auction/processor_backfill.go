package auction

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
)

// backfillPass fills spend details of sold and closed auctions recorded before their spend confirmed.
// It never changes a status and never clears a stored field.
func (p *Processor) backfillPass(ctx context.Context) error {
	auctions, err := p.auctionDg.GetAuctionsMissingSpendDetails(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get auctions missing spend details")
	}
	if len(auctions) == 0 {
		return nil
	}

	var filled int
	_, err = p.commitTransitions(ctx, func(dg datagateway.AuctionDataGateway) ([]transition, error) {
		for _, auction := range auctions {
			params := datagateway.UpdateAuctionParams{
				ID:          auction.ID,
				SpentTxHash: auction.SpentTxHash,
			}
			p.fillSpendDetails(ctx, &params, auction)
			if params.SpentBlock == nil && params.SpentAt == nil && params.Recipient == nil {
				continue
			}
			if err := dg.UpdateAuction(ctx, params); err != nil {
				return nil, errors.Wrapf(err, "failed to update auction %d", auction.ID)
			}
			filled++
		}
		return nil, nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Backfill pass completed",
		slogx.Int("pending", len(auctions)),
		slogx.Int("filled", filled),
	)
	return nil
}
