package auction

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
)

// blockPass moves monitored auctions along the schedule at the current height.
// A spent UTXO on an active or finished auction is left to the UTXO pass.
func (p *Processor) blockPass(ctx context.Context) error {
	height, err := p.btcClient.CurrentHeight(ctx)
	if err != nil {
		if errors.Is(err, errs.LedgerPending) {
			logger.DebugContext(ctx, "Node is not ready, skipped block pass", slogx.Error(err))
			return nil
		}
		return errors.Wrap(err, "failed to get current height")
	}

	auctions, err := p.auctionDg.GetAuctions(ctx, entity.MonitoredStatuses...)
	if err != nil {
		return errors.Wrap(err, "failed to get monitored auctions")
	}

	transitions, err := p.commitTransitions(ctx, func(dg datagateway.AuctionDataGateway) ([]transition, error) {
		var transitions []transition
		for _, auction := range auctions {
			next, err := p.scheduledStatus(ctx, auction, height)
			if err != nil {
				if errors.Is(err, errs.LedgerPending) {
					logger.DebugContext(ctx, "UTXO status pending, skipped auction",
						slogx.Int64("auction_id", auction.ID),
						slogx.Error(err),
					)
					continue
				}
				return nil, errors.Wrapf(err, "failed to check auction %d", auction.ID)
			}
			if next == auction.Status {
				continue
			}
			if err := dg.UpdateAuction(ctx, datagateway.UpdateAuctionParams{
				ID:     auction.ID,
				Status: &next,
			}); err != nil {
				return nil, errors.Wrapf(err, "failed to update auction %d", auction.ID)
			}
			transitions = append(transitions, transition{auction: auction, next: next})
		}
		return transitions, nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Block pass completed",
		slogx.Int64("height", height),
		slogx.Int("monitored", len(auctions)),
		slogx.Int("transitions", len(transitions)),
	)
	p.refreshWatchSet(ctx)

	// new confirmations may resolve spends recorded while unconfirmed
	if err := p.runPass(ctx, passBackfill, p.backfillPass); err != nil {
		logger.ErrorContext(ctx, "Backfill pass failed", err)
	}
	return nil
}

// scheduledStatus returns the status auction reaches at height. Due steps cascade,
// so an auction far behind the chain tip catches up in a single pass.
func (p *Processor) scheduledStatus(ctx context.Context, auction *entity.Auction, height int64) (entity.Status, error) {
	var spent *bool
	isSpent := func() (bool, error) {
		if spent == nil {
			s, err := p.btcClient.IsSpent(ctx, auction.UTXO)
			if err != nil {
				return false, errors.WithStack(err)
			}
			spent = &s
		}
		return *spent, nil
	}

	status := auction.Status
	for {
		var due bool
		switch status {
		case entity.StatusUpcoming:
			due = height >= auction.StartBlock
		case entity.StatusActive:
			due = height > auction.EndBlock
		case entity.StatusFinished:
			due = height >= auction.CleanupBlock()
		}
		if !due {
			return status, nil
		}

		s, err := isSpent()
		if err != nil {
			return auction.Status, errors.WithStack(err)
		}
		switch {
		case s && status == entity.StatusUpcoming:
			return entity.StatusClosed, nil
		case s:
			return status, nil
		case status == entity.StatusUpcoming:
			status = entity.StatusActive
		case status == entity.StatusActive && auction.BlocksAfterEnd == 0:
			status = entity.StatusExpired
		case status == entity.StatusActive:
			status = entity.StatusFinished
		default:
			status = entity.StatusExpired
		}
	}
}
