package btcclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/pkg/btcutils"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gaze-network/dutch-auction/pkg/metrics"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const DefaultBatchSize = 50

// Make sure to implement the Contract interface
var _ Contract = (*Client)(nil)

type Config struct {
	ConnConfig rpcclient.ConnConfig
	Network    common.Network
	BatchSize  int // gettxout calls per batch request, default is 50
}

// Client talks JSON-RPC to a Bitcoin Core node.
//
// Amounts are decoded from the raw JSON so they never pass through float64.
// Batched calls use a dedicated batch client per request, which is not shared between goroutines.
type Client struct {
	rpc        *rpcclient.Client
	connConfig rpcclient.ConnConfig
	network    common.Network
	batchSize  int
	strategies []SpendingStrategy
}

type Option func(*Client)

// WithSpendingStrategies replaces the ordered list of strategies used by FindSpendingTransaction.
func WithSpendingStrategies(strategies ...SpendingStrategy) Option {
	return func(c *Client) {
		c.strategies = strategies
	}
}

func New(config Config, opts ...Option) (*Client, error) {
	connConfig := config.ConnConfig
	connConfig.HTTPPostMode = true

	rpc, err := rpcclient.New(&connConfig, nil)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Bitcoin node configuration")
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	c := &Client{
		rpc:        rpc,
		connConfig: connConfig,
		network:    config.Network,
		batchSize:  batchSize,
		strategies: DefaultSpendingStrategies(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Shutdown stops the underlying RPC client.
func (c *Client) Shutdown() {
	c.rpc.Shutdown()
}

type scriptPubKeyResult struct {
	Hex       string   `json:"hex"`
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Addresses []string `json:"addresses"` // nodes older than v22
}

type txOutResult struct {
	Confirmations int64              `json:"confirmations"`
	Value         decimal.Decimal    `json:"value"`
	ScriptPubKey  scriptPubKeyResult `json:"scriptPubKey"`
}

type rawTxResult struct {
	TxID string `json:"txid"`
	Vin  []struct {
		Coinbase string `json:"coinbase"`
		TxID     string `json:"txid"`
		Vout     uint32 `json:"vout"`
	} `json:"vin"`
	Vout []struct {
		Value        decimal.Decimal    `json:"value"`
		N            uint32             `json:"n"`
		ScriptPubKey scriptPubKeyResult `json:"scriptPubKey"`
	} `json:"vout"`
	Confirmations int64 `json:"confirmations"`
	BlockTime     int64 `json:"blocktime"`
}

func marshalParams(params ...any) ([]json.RawMessage, error) {
	raw := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(err, "can't marshal rpc param")
		}
		raw = append(raw, b)
	}
	return raw, nil
}

func isNullResult(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// call issues a single JSON-RPC request and classifies its error.
func (c *Client) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	rawParams, err := marshalParams(params...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	start := time.Now()
	result, err := c.rpc.RawRequest(method, rawParams)
	metrics.ObserveRPC(method, err, start)
	if err != nil {
		return nil, classifyError(err, method)
	}
	return result, nil
}

func (c *Client) resolveAddress(spk scriptPubKeyResult, pkScript []byte) string {
	if spk.Address != "" {
		return spk.Address
	}
	if len(spk.Addresses) > 0 {
		return spk.Addresses[0]
	}
	if len(pkScript) == 0 || !c.network.IsSupported() {
		return ""
	}
	address, err := btcutils.PkScriptToAddress(pkScript, c.network)
	if err != nil {
		return ""
	}
	return address
}

func (c *Client) CurrentHeight(ctx context.Context) (int64, error) {
	raw, err := c.call(ctx, "getblockcount")
	if err != nil {
		return 0, errors.WithStack(err)
	}
	var height int64
	if err := json.Unmarshal(raw, &height); err != nil {
		return 0, errors.Wrap(errs.LedgerError, "invalid getblockcount result")
	}
	return height, nil
}

func (c *Client) GetUTXO(ctx context.Context, outPoint wire.OutPoint) (*UTXO, error) {
	raw, err := c.call(ctx, "gettxout", outPoint.Hash.String(), outPoint.Index, true)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if isNullResult(raw) {
		return nil, nil
	}

	var result txOutResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid gettxout result: %v", err)
	}
	pkScript, _ := hex.DecodeString(result.ScriptPubKey.Hex)

	return &UTXO{
		OutPoint:      outPoint,
		Value:         btcutils.BitcoinToSatoshi(result.Value),
		PkScript:      pkScript,
		Address:       c.resolveAddress(result.ScriptPubKey, pkScript),
		Confirmations: result.Confirmations,
	}, nil
}

func (c *Client) IsSpent(ctx context.Context, outPoint wire.OutPoint) (bool, error) {
	utxo, err := c.GetUTXO(ctx, outPoint)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return utxo == nil, nil
}

func (c *Client) BatchIsSpent(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint]bool, error) {
	result := make(map[wire.OutPoint]bool, len(outPoints))
	if len(outPoints) == 0 {
		return result, nil
	}

	unavailable := 0
	for _, chunk := range lo.Chunk(outPoints, c.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		spent, failed := c.batchGetTxOut(ctx, chunk)
		for outPoint, isSpent := range spent {
			result[outPoint] = isSpent
		}

		// isolate failing items, entries that still fail are left out of the result
		for _, outPoint := range failed {
			isSpent, err := c.IsSpent(ctx, outPoint)
			if err != nil {
				if errors.Is(err, errs.LedgerUnavailable) {
					unavailable++
				}
				logger.DebugContext(ctx, "Dropped output from batch spent check",
					slogx.Stringer("outpoint", outPoint),
					slogx.Error(err),
				)
				continue
			}
			result[outPoint] = isSpent
		}
	}

	if unavailable == len(outPoints) {
		return nil, errors.Wrapf(errs.LedgerUnavailable, "none of %d outputs could be checked", len(outPoints))
	}
	return result, nil
}

// batchGetTxOut sends one gettxout batch. It returns the spent status of every answered output
// and the outputs to retry one by one.
func (c *Client) batchGetTxOut(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint]bool, []wire.OutPoint) {
	connConfig := c.connConfig
	batch, err := rpcclient.NewBatch(&connConfig)
	if err != nil {
		logger.WarnContext(ctx, "Can't create batch client", slogx.Error(err))
		return nil, outPoints
	}
	defer batch.Shutdown()

	futures := make([]rpcclient.FutureRawResult, len(outPoints))
	for i, outPoint := range outPoints {
		params, err := marshalParams(outPoint.Hash.String(), outPoint.Index, true)
		if err != nil {
			return nil, outPoints
		}
		futures[i] = batch.RawRequestAsync("gettxout", params)
	}

	start := time.Now()
	err = batch.Send()
	metrics.ObserveRPC("gettxout_batch", err, start)
	if err != nil {
		logger.DebugContext(ctx, "Batch gettxout failed, falling back to single requests",
			slogx.Int("size", len(outPoints)),
			slogx.Error(err),
		)
		return nil, outPoints
	}

	spent := make(map[wire.OutPoint]bool, len(outPoints))
	var failed []wire.OutPoint
	for i, future := range futures {
		raw, err := future.Receive()
		if err != nil {
			failed = append(failed, outPoints[i])
			continue
		}
		spent[outPoints[i]] = isNullResult(raw)
	}
	return spent, failed
}

func (c *Client) GetTransaction(ctx context.Context, txHash chainhash.Hash) (*Transaction, error) {
	raw, err := c.call(ctx, "getrawtransaction", txHash.String(), true)
	if err != nil {
		if isRPCErrorCode(err, codeInvalidAddressOrKey) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	if isNullResult(raw) {
		return nil, nil
	}

	var result rawTxResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid getrawtransaction result: %v", err)
	}

	tx := &Transaction{
		TxHash:        txHash,
		Inputs:        make([]wire.OutPoint, 0, len(result.Vin)),
		Outputs:       make([]TxOutput, 0, len(result.Vout)),
		Confirmations: result.Confirmations,
		BlockTime:     result.BlockTime,
	}
	for _, vin := range result.Vin {
		if vin.Coinbase != "" {
			continue
		}
		prevHash, err := chainhash.NewHashFromStr(vin.TxID)
		if err != nil {
			return nil, errors.Wrapf(errs.LedgerError, "invalid input txid %q", vin.TxID)
		}
		tx.Inputs = append(tx.Inputs, wire.OutPoint{Hash: *prevHash, Index: vin.Vout})
	}
	for _, vout := range result.Vout {
		pkScript, _ := hex.DecodeString(vout.ScriptPubKey.Hex)
		tx.Outputs = append(tx.Outputs, TxOutput{
			Index:    vout.N,
			Value:    btcutils.BitcoinToSatoshi(vout.Value),
			PkScript: pkScript,
			Address:  c.resolveAddress(vout.ScriptPubKey, pkScript),
		})
	}
	return tx, nil
}

func (c *Client) GetTransactionDetails(ctx context.Context, txHash chainhash.Hash) (*TransactionDetails, error) {
	tx, err := c.GetTransaction(ctx, txHash)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if tx == nil || tx.Confirmations <= 0 {
		return nil, nil
	}

	height, err := c.CurrentHeight(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &TransactionDetails{
		BlockHeight: height - tx.Confirmations + 1,
		BlockTime:   time.Unix(tx.BlockTime, 0).UTC(),
	}, nil
}

func (c *Client) GetRecipientAddress(ctx context.Context, txHash chainhash.Hash) (string, error) {
	tx, err := c.GetTransaction(ctx, txHash)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if tx == nil {
		return "", nil
	}
	for _, out := range tx.Outputs {
		if btcutils.IsDataCarrier(out.PkScript) {
			continue
		}
		return out.Address, nil
	}
	return "", nil
}

func (c *Client) FindSpendingTransaction(ctx context.Context, outPoint wire.OutPoint) (*chainhash.Hash, error) {
	spent, err := c.IsSpent(ctx, outPoint)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !spent {
		return nil, nil
	}

	for _, strategy := range c.strategies {
		txHash, err := strategy.FindSpending(ctx, c, outPoint)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.WithStack(ctx.Err())
			}
			if !isStrategyUnsupported(err) {
				return nil, errors.Wrapf(err, "spending lookup %s failed", strategy.Name())
			}
			logger.DebugContext(ctx, "Spending lookup unsupported by node, trying next strategy",
				slogx.String("strategy", strategy.Name()),
				slogx.Stringer("outpoint", outPoint),
				slogx.Error(err),
			)
			continue
		}
		if txHash != nil {
			return txHash, nil
		}
	}

	logger.WarnContext(ctx, "Could not find spending transaction", slogx.Stringer("outpoint", outPoint))
	return nil, nil
}
