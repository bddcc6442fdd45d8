package auction

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/go-co-op/gocron"
)

const (
	DefaultBlockInterval = 300 * time.Second
	DefaultUTXOInterval  = 300 * time.Second
)

// Scheduler runs the block and UTXO passes periodically.
// Both passes also run once as soon as the scheduler starts.
type Scheduler struct {
	processor *Processor
	scheduler *gocron.Scheduler

	blockInterval time.Duration
	utxoInterval  time.Duration
}

func NewScheduler(processor *Processor, blockInterval, utxoInterval time.Duration) *Scheduler {
	if blockInterval <= 0 {
		blockInterval = DefaultBlockInterval
	}
	if utxoInterval <= 0 {
		utxoInterval = DefaultUTXOInterval
	}
	scheduler := gocron.NewScheduler(time.UTC)
	// a slow pass delays its next run instead of stacking up
	scheduler.SingletonModeAll()
	return &Scheduler{
		processor:     processor,
		scheduler:     scheduler,
		blockInterval: blockInterval,
		utxoInterval:  utxoInterval,
	}
}

// Start schedules both passes. Passes run with ctx until Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) error
	}{
		{passBlock, s.blockInterval, s.processor.CheckBlocks},
		{passUTXO, s.utxoInterval, s.processor.CheckUTXOs},
	}
	for _, job := range jobs {
		run := job.run
		name := job.name
		if _, err := s.scheduler.Every(job.interval).Name(name).Do(func() {
			if err := run(ctx); err != nil {
				logger.ErrorContext(ctx, "Scheduled reconciliation failed", err, slogx.String("pass", name))
			}
		}); err != nil {
			return errors.Wrapf(err, "failed to schedule %s pass", name)
		}
	}
	s.scheduler.StartAsync()
	logger.InfoContext(ctx, "Started reconciliation scheduler",
		slogx.Duration("block_interval", s.blockInterval),
		slogx.Duration("utxo_interval", s.utxoInterval),
	)
	return nil
}

// Stop stops scheduling new passes. A pass in flight is left to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
