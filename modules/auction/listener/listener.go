// Package listener reacts to bitcoind ZMQ notifications by triggering reconciliation passes early.
// Losing notifications only delays reconciliation, the scheduled passes reach the same state.
package listener

import (
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/pkg/btcutils"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gaze-network/dutch-auction/pkg/metrics"
	"github.com/lightninglabs/gozmq"
)

const (
	TopicRawBlock = "rawblock"
	TopicRawTx    = "rawtx"

	DefaultReceiveTimeout = time.Second
	DefaultBlockURL       = "tcp://bitcoind:9333"
	DefaultTxURL          = "tcp://bitcoind:9332"

	defaultShutdownTimeout = 5 * time.Second
)

// Engine is the reconciliation engine as seen by the listener.
type Engine interface {
	TriggerBlockCheck(ctx context.Context) bool
	TriggerUTXOCheck(ctx context.Context) bool
	IsWatched(outPoint wire.OutPoint) bool
}

// Subscriber is a ZMQ SUB socket.
type Subscriber interface {
	Receive(bufs [][]byte) ([][]byte, error)
	Close() error
}

type DialFunc func(addr string, topics []string, timeout time.Duration) (Subscriber, error)

func dialZMQ(addr string, topics []string, timeout time.Duration) (Subscriber, error) {
	conn, err := gozmq.Subscribe(addr, topics, timeout)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return conn, nil
}

type Config struct {
	BlockURL        string
	TxURL           string
	ReceiveTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type Listener struct {
	engine Engine
	dial   DialFunc
	config Config

	running atomic.Bool
	wg      sync.WaitGroup
	mu      sync.Mutex
	subs    []Subscriber
}

type Option func(*Listener)

// WithDialer replaces the ZMQ dialer.
func WithDialer(dial DialFunc) Option {
	return func(l *Listener) {
		l.dial = dial
	}
}

func New(engine Engine, config Config, opts ...Option) *Listener {
	if config.BlockURL == "" {
		config.BlockURL = DefaultBlockURL
	}
	if config.TxURL == "" {
		config.TxURL = DefaultTxURL
	}
	if config.ReceiveTimeout <= 0 {
		config.ReceiveTimeout = DefaultReceiveTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	l := &Listener{
		engine: engine,
		dial:   dialZMQ,
		config: config,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start subscribes to both topics and runs one receive loop per subscription.
func (l *Listener) Start(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("listener already started")
	}

	subscriptions := []struct {
		url   string
		topic string
	}{
		{l.config.BlockURL, TopicRawBlock},
		{l.config.TxURL, TopicRawTx},
	}
	for _, s := range subscriptions {
		sub, err := l.dial(s.url, []string{s.topic}, l.config.ReceiveTimeout)
		if err != nil {
			_ = l.Shutdown(ctx)
			return errors.Wrapf(err, "failed to subscribe to %s on %s", s.topic, s.url)
		}
		l.mu.Lock()
		l.subs = append(l.subs, sub)
		l.mu.Unlock()

		l.wg.Add(1)
		go l.receiveLoop(ctx, s.topic, sub)
		logger.InfoContext(ctx, "Subscribed to ZMQ topic", slogx.String("topic", s.topic), slogx.String("url", s.url))
	}
	return nil
}

// Shutdown stops the receive loops and waits for them to return, up to the shutdown timeout.
func (l *Listener) Shutdown(ctx context.Context) error {
	l.running.Store(false)

	l.mu.Lock()
	subs := l.subs
	l.subs = nil
	l.mu.Unlock()
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to close ZMQ subscription", slogx.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(l.config.ShutdownTimeout):
		return errors.New("timed out waiting for listener to stop")
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

func (l *Listener) receiveLoop(ctx context.Context, topic string, sub Subscriber) {
	defer l.wg.Done()
	ctx = logger.WithContext(ctx, slogx.String("topic", topic))

	for l.running.Load() {
		msg, err := sub.Receive(nil)
		if err != nil {
			if !l.running.Load() || errors.Is(err, io.EOF) {
				return
			}
			// gozmq reports reconnects as timeouts
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			logger.WarnContext(ctx, "Failed to receive ZMQ message", slogx.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.config.ReceiveTimeout):
			}
			continue
		}
		// frames: topic, body, sequence number
		if len(msg) < 2 {
			continue
		}
		l.handle(ctx, string(msg[0]), msg[1])
	}
}

func (l *Listener) handle(ctx context.Context, topic string, body []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Recovered from panic while handling ZMQ message", errors.Newf("panic: %v", r))
		}
	}()

	metrics.ObserveNotification(topic)
	switch topic {
	case TopicRawBlock:
		l.engine.TriggerBlockCheck(ctx)
	case TopicRawTx:
		l.handleTx(ctx, body)
	}
}

// handleTx triggers the UTXO pass once if the transaction spends a watched UTXO.
func (l *Listener) handleTx(ctx context.Context, rawTx []byte) {
	for _, outPoint := range btcutils.ExtractSpentOutputs(rawTx) {
		if l.engine.IsWatched(outPoint) {
			logger.InfoContext(ctx, "Watched UTXO spent in mempool", slogx.Stringer("utxo", outPoint))
			l.engine.TriggerUTXOCheck(ctx)
			return
		}
	}
}
