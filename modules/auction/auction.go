package auction

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/internal/config"
	"github.com/gaze-network/dutch-auction/internal/postgres"
	"github.com/gaze-network/dutch-auction/modules/auction/api/httphandler"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gaze-network/dutch-auction/modules/auction/listener"
	repository "github.com/gaze-network/dutch-auction/modules/auction/repository/postgres"
	"github.com/gaze-network/dutch-auction/modules/auction/usecase"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/counterparty"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
)

const Version = "v0.1.0"

// Module owns the reconciliation engine of the auction service and its background triggers.
type Module struct {
	processor *Processor
	scheduler *Scheduler
	listener  *listener.Listener // nil when push notifications are disabled

	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	btcClient := do.MustInvoke[*btcclient.Client](injector)

	pg, err := postgres.NewPool(ctx, conf.Auction.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "can't create postgres connection pool")
	}
	var cleanupFuncs []func(context.Context) error
	cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
		pg.Close()
		return nil
	})
	repo := repository.NewRepository(pg)

	cpClient, err := counterparty.New(conf.Auction.Counterparty.URL, conf.Auction.Counterparty.Timeout)
	if err != nil {
		pg.Close()
		return nil, errors.Wrap(err, "can't create counterparty client")
	}

	processor := NewProcessor(repo, btcClient)
	uc := usecase.New(repo, btcClient, validator.New(btcClient, cpClient), processor)

	httpServer := do.MustInvoke[*fiber.App](injector)
	if err := httphandler.New(uc, conf.Auction.APIKey).Mount(httpServer); err != nil {
		pg.Close()
		return nil, errors.Wrap(err, "can't mount auction API")
	}
	logger.InfoContext(ctx, "Mounted auction HTTP handler")
	if conf.Auction.APIKey == "" {
		logger.WarnContext(ctx, "Auction API key is not configured, auction creation is disabled")
	}

	m := &Module{
		processor:    processor,
		scheduler:    NewScheduler(processor, conf.Auction.Monitor.BlockInterval, conf.Auction.Monitor.UTXOInterval),
		cleanupFuncs: cleanupFuncs,
	}
	if conf.Auction.ZMQ.Enabled {
		m.listener = listener.New(processor, listener.Config{
			BlockURL:       conf.Auction.ZMQ.BlockURL,
			TxURL:          conf.Auction.ZMQ.TxURL,
			ReceiveTimeout: conf.Auction.ZMQ.ReceiveTimeout,
		})
	}
	return m, nil
}

// Run starts the scheduler and the push listener, then blocks until ctx is done.
// A listener that can't subscribe is logged and the module keeps running on the schedule alone.
func (m *Module) Run(ctx context.Context) error {
	if err := m.processor.RefreshWatchSet(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to load watched UTXOs, the first UTXO pass will load them", slogx.Error(err))
	}
	if err := m.scheduler.Start(ctx); err != nil {
		return errors.Wrap(err, "can't start reconciliation scheduler")
	}
	if m.listener != nil {
		if err := m.listener.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start ZMQ listener, falling back to scheduled checks only", err)
		}
	}

	<-ctx.Done()
	return nil
}

// Shutdown stops the background triggers and releases module resources.
func (m *Module) Shutdown(ctx context.Context) error {
	var errList []error
	m.scheduler.Stop()
	if m.listener != nil {
		if err := m.listener.Shutdown(ctx); err != nil {
			errList = append(errList, errors.Wrap(err, "failed to stop ZMQ listener"))
		}
	}
	for _, cleanup := range m.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
