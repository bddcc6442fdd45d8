package auction

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/samber/lo"
)

// utxoPass closes monitored auctions whose UTXO has been spent, as sold when the spend is a sale.
func (p *Processor) utxoPass(ctx context.Context) error {
	auctions, err := p.auctionDg.GetAuctions(ctx, entity.MonitoredStatuses...)
	if err != nil {
		return errors.Wrap(err, "failed to get monitored auctions")
	}
	p.setWatchSet(auctions)
	if len(auctions) == 0 {
		return nil
	}

	outPoints := lo.Uniq(lo.Map(auctions, func(auction *entity.Auction, _ int) wire.OutPoint {
		return auction.UTXO
	}))
	spentByOutPoint, err := p.btcClient.BatchIsSpent(ctx, outPoints)
	if err != nil {
		return errors.Wrap(err, "failed to check UTXOs")
	}

	transitions, err := p.commitTransitions(ctx, func(dg datagateway.AuctionDataGateway) ([]transition, error) {
		var transitions []transition
		for _, auction := range auctions {
			// missing means unknown, retried next cycle
			if spent, ok := spentByOutPoint[auction.UTXO]; !ok || !spent {
				continue
			}
			params, err := p.resolveSpend(ctx, auction)
			if err != nil {
				if errors.Is(err, errs.LedgerPending) {
					logger.DebugContext(ctx, "Spend lookup pending, skipped auction",
						slogx.Int64("auction_id", auction.ID),
						slogx.Error(err),
					)
					continue
				}
				return nil, errors.Wrapf(err, "failed to resolve spend of auction %d", auction.ID)
			}
			if err := dg.UpdateAuction(ctx, params); err != nil {
				return nil, errors.Wrapf(err, "failed to update auction %d", auction.ID)
			}
			transitions = append(transitions, transition{auction: auction, next: *params.Status})
		}
		return transitions, nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "UTXO pass completed",
		slogx.Int("monitored", len(auctions)),
		slogx.Int("transitions", len(transitions)),
	)
	if len(transitions) > 0 {
		p.refreshWatchSet(ctx)
	}
	return nil
}

// resolveSpend builds the terminal update for an auction whose UTXO is spent.
func (p *Processor) resolveSpend(ctx context.Context, auction *entity.Auction) (datagateway.UpdateAuctionParams, error) {
	params := datagateway.UpdateAuctionParams{ID: auction.ID}

	spender, err := p.btcClient.FindSpendingTransaction(ctx, auction.UTXO)
	if err != nil {
		return params, errors.Wrap(err, "failed to find spending transaction")
	}
	status := entity.StatusClosed
	params.Status = &status
	if spender == nil {
		logger.WarnContext(ctx, "Spending transaction not found, closing auction",
			slogx.Int64("auction_id", auction.ID),
			slogx.Stringer("utxo", auction.UTXO),
		)
		return params, nil
	}
	params.SpentTxHash = spender

	sold, err := p.isSale(ctx, auction, *spender)
	if err != nil {
		return params, errors.WithStack(err)
	}
	// an auction that never started can only be closed
	if sold && auction.Status.CanTransitionTo(entity.StatusSold) {
		status = entity.StatusSold
	}

	p.fillSpendDetails(ctx, &params, auction)
	return params, nil
}

// fillSpendDetails sets whatever spend details the ledger can already provide.
// Unavailable details are left nil for the backfill pass.
func (p *Processor) fillSpendDetails(ctx context.Context, params *datagateway.UpdateAuctionParams, auction *entity.Auction) {
	spender := *params.SpentTxHash
	if auction.SpentBlock == nil || auction.SpentAt == nil {
		details, err := p.btcClient.GetTransactionDetails(ctx, spender)
		switch {
		case err != nil:
			logger.DebugContext(ctx, "Spend details unavailable", slogx.Stringer("txid", spender), slogx.Error(err))
		case details != nil:
			params.SpentBlock = &details.BlockHeight
			params.SpentAt = &details.BlockTime
		}
	}
	if auction.Recipient == nil {
		recipient, err := p.btcClient.GetRecipientAddress(ctx, spender)
		switch {
		case err != nil:
			logger.DebugContext(ctx, "Recipient unavailable", slogx.Stringer("txid", spender), slogx.Error(err))
		case recipient != "":
			params.Recipient = &recipient
		}
	}
}

func (p *Processor) isSale(ctx context.Context, auction *entity.Auction, spender chainhash.Hash) (bool, error) {
	tx, err := p.btcClient.GetTransaction(ctx, spender)
	if err != nil {
		return false, errors.Wrap(err, "failed to get spending transaction")
	}
	if tx == nil {
		return false, nil
	}
	rungs, err := p.auctionDg.GetPriceRungs(ctx, auction.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to get price rungs")
	}
	return IsSale(auction, tx, rungs), nil
}

// IsSale reports whether tx spends the auction UTXO and pays exactly one of the ladder prices.
func IsSale(auction *entity.Auction, tx *btcclient.Transaction, rungs []*entity.PriceRung) bool {
	if tx == nil || !tx.SpendsOutPoint(auction.UTXO) {
		return false
	}
	prices := entity.RungPrices(rungs)
	return lo.ContainsBy(tx.Outputs, func(output btcclient.TxOutput) bool {
		_, ok := prices[output.Value]
		return ok
	})
}
