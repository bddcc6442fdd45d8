package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
)

// CreateAuction validates and stores a new auction with its price ladder.
// Nothing is stored unless every check passes.
func (u *Usecase) CreateAuction(ctx context.Context, submission validator.Submission) (*entity.Auction, error) {
	admission, err := u.validator.Validate(ctx, submission)
	if err != nil {
		logger.WarnContext(ctx, "Rejected auction submission", slogx.Error(err))
		return nil, errors.WithStack(err)
	}
	auction := admission.Auction

	u.admitMu.Lock()
	defer u.admitMu.Unlock()

	listed, err := u.auctionDg.GetAuctionsByUTXO(ctx, auction.UTXO, entity.MonitoredStatuses...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auctions by utxo")
	}
	if len(listed) > 0 {
		return nil, errs.NewPublicErrorKind(errs.Conflict, "Auction already exists for UTXO %s", auction.UTXO)
	}

	dgTx, err := u.auctionDg.BeginAuctionTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := dgTx.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction", err)
		}
	}()

	if err := dgTx.CreateAuction(ctx, auction); err != nil {
		return nil, errors.Wrap(err, "failed to create auction")
	}
	for _, rung := range admission.Rungs {
		rung.AuctionID = auction.ID
	}
	if err := dgTx.CreatePriceRungs(ctx, admission.Rungs); err != nil {
		return nil, errors.Wrap(err, "failed to create price rungs")
	}
	if err := dgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	u.watcher.Watch(auction.UTXO)
	logger.InfoContext(ctx, "Created auction",
		slogx.Int64("auction_id", auction.ID),
		slogx.String("asset", auction.AssetName),
		slogx.Stringer("utxo", auction.UTXO),
	)
	return auction, nil
}
