package auction

import (
	"context"
	"sync"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gaze-network/dutch-auction/pkg/metrics"
	"github.com/samber/lo"
)

const (
	passBlock    = "block"
	passUTXO     = "utxo"
	passBackfill = "backfill"
)

// Processor reconciles stored auctions with the ledger.
//
// Every pass runs under one engine-wide gate, so no two passes ever touch the same rows concurrently.
// Scheduled passes wait for the gate, push triggers skip when it is taken.
type Processor struct {
	auctionDg datagateway.AuctionDataGateway
	btcClient btcclient.Contract

	gate sync.Mutex

	watchMu  sync.RWMutex
	watchSet map[wire.OutPoint]struct{}
}

func NewProcessor(auctionDg datagateway.AuctionDataGateway, btcClient btcclient.Contract) *Processor {
	return &Processor{
		auctionDg: auctionDg,
		btcClient: btcClient,
		watchSet:  make(map[wire.OutPoint]struct{}),
	}
}

func (p *Processor) Name() string {
	return "auction"
}

// CheckBlocks runs the block pass, waiting for any running pass to finish first.
func (p *Processor) CheckBlocks(ctx context.Context) error {
	p.gate.Lock()
	defer p.gate.Unlock()
	return p.runPass(ctx, passBlock, p.blockPass)
}

// CheckUTXOs runs the UTXO pass, waiting for any running pass to finish first.
func (p *Processor) CheckUTXOs(ctx context.Context) error {
	p.gate.Lock()
	defer p.gate.Unlock()
	return p.runPass(ctx, passUTXO, p.utxoPass)
}

// TriggerBlockCheck runs the block pass unless another pass is running.
// It reports whether the pass ran.
func (p *Processor) TriggerBlockCheck(ctx context.Context) bool {
	return p.trigger(ctx, passBlock, p.blockPass)
}

// TriggerUTXOCheck runs the UTXO pass unless another pass is running.
// It reports whether the pass ran.
func (p *Processor) TriggerUTXOCheck(ctx context.Context) bool {
	return p.trigger(ctx, passUTXO, p.utxoPass)
}

func (p *Processor) trigger(ctx context.Context, pass string, fn func(context.Context) error) bool {
	if !p.gate.TryLock() {
		logger.DebugContext(ctx, "Reconciliation already running, skipped trigger", slogx.String("pass", pass))
		metrics.ObservePass(pass, metrics.OutcomeSkipped, time.Now())
		return false
	}
	defer p.gate.Unlock()
	if err := p.runPass(ctx, pass, fn); err != nil {
		logger.ErrorContext(ctx, "Triggered reconciliation failed", err, slogx.String("pass", pass))
	}
	return true
}

func (p *Processor) runPass(ctx context.Context, pass string, fn func(context.Context) error) error {
	started := time.Now()
	ctx = logger.WithContext(ctx, slogx.String("pass", pass))
	if err := fn(ctx); err != nil {
		metrics.ObservePass(pass, metrics.OutcomeError, started)
		return errors.Wrapf(err, "%s pass failed", pass)
	}
	metrics.ObservePass(pass, metrics.OutcomeSuccess, started)
	logger.DebugContext(ctx, "Reconciliation pass completed", slogx.Duration("duration", time.Since(started)))
	return nil
}

// IsWatched reports whether outPoint belongs to a monitored auction.
func (p *Processor) IsWatched(outPoint wire.OutPoint) bool {
	p.watchMu.RLock()
	defer p.watchMu.RUnlock()
	_, ok := p.watchSet[outPoint]
	return ok
}

// Watch adds outPoint to the watch-set until the next refresh.
func (p *Processor) Watch(outPoint wire.OutPoint) {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()
	p.watchSet[outPoint] = struct{}{}
}

// WatchedUTXOs returns a snapshot of the watch-set.
func (p *Processor) WatchedUTXOs() []wire.OutPoint {
	p.watchMu.RLock()
	defer p.watchMu.RUnlock()
	return lo.Keys(p.watchSet)
}

func (p *Processor) setWatchSet(auctions []*entity.Auction) {
	watchSet := make(map[wire.OutPoint]struct{}, len(auctions))
	for _, auction := range auctions {
		if auction.Status.IsMonitored() {
			watchSet[auction.UTXO] = struct{}{}
		}
	}
	p.watchMu.Lock()
	defer p.watchMu.Unlock()
	p.watchSet = watchSet
}

// RefreshWatchSet reloads the watch-set from the store.
func (p *Processor) RefreshWatchSet(ctx context.Context) error {
	auctions, err := p.auctionDg.GetAuctions(ctx, entity.MonitoredStatuses...)
	if err != nil {
		return errors.Wrap(err, "failed to get monitored auctions")
	}
	p.setWatchSet(auctions)
	return nil
}

func (p *Processor) refreshWatchSet(ctx context.Context) {
	if err := p.RefreshWatchSet(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to refresh watch-set", slogx.Error(err))
	}
}

type transition struct {
	auction *entity.Auction
	next    entity.Status
}

// commitTransitions runs apply inside one store transaction. Nothing is written if apply fails.
func (p *Processor) commitTransitions(ctx context.Context, apply func(dg datagateway.AuctionDataGateway) ([]transition, error)) ([]transition, error) {
	dgTx, err := p.auctionDg.BeginAuctionTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := dgTx.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction", err)
		}
	}()

	transitions, err := apply(dgTx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := dgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	for _, t := range transitions {
		metrics.ObserveTransition(t.auction.Status.String(), t.next.String())
		logger.InfoContext(ctx, "Auction status changed",
			slogx.Int64("auction_id", t.auction.ID),
			slogx.Stringer("utxo", t.auction.UTXO),
			slogx.Stringer("from", t.auction.Status),
			slogx.Stringer("to", t.next),
		)
	}
	return transitions, nil
}
