package btcclient

import (
	"context"
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
)

// SpendingStrategy is one way of discovering the transaction that spent an output.
// A strategy returns nil with a nil error when it has no answer, and an error when the node
// can't serve it (missing index, unknown method). Either way the next strategy is tried.
// Unavailable or pending node errors stop the lookup.
type SpendingStrategy interface {
	Name() string
	FindSpending(ctx context.Context, c *Client, outPoint wire.OutPoint) (*chainhash.Hash, error)
}

// DefaultSpendingStrategies returns the strategies in the order they are attempted.
func DefaultSpendingStrategies() []SpendingStrategy {
	return []SpendingStrategy{
		SpentOutputIndexStrategy{},
		SpentInfoStrategy{},
		AddressHistoryStrategy{},
	}
}

// SpentOutputIndexStrategy uses gettxspendingprevout, served by the mempool
// and by nodes running with -txospenderindex.
type SpentOutputIndexStrategy struct{}

func (SpentOutputIndexStrategy) Name() string { return "gettxspendingprevout" }

func (s SpentOutputIndexStrategy) FindSpending(ctx context.Context, c *Client, outPoint wire.OutPoint) (*chainhash.Hash, error) {
	type prevout struct {
		TxID string `json:"txid"`
		Vout uint32 `json:"vout"`
	}
	raw, err := c.call(ctx, s.Name(), []prevout{{TxID: outPoint.Hash.String(), Vout: outPoint.Index}})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var result []struct {
		TxID         string `json:"txid"`
		Vout         uint32 `json:"vout"`
		SpendingTxID string `json:"spendingtxid"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid %s result: %v", s.Name(), err)
	}
	for _, entry := range result {
		if entry.SpendingTxID == "" {
			continue
		}
		return parseTxID(entry.SpendingTxID)
	}
	return nil, nil
}

// SpentInfoStrategy uses getspentinfo, available on nodes built with the spent index patch.
type SpentInfoStrategy struct{}

func (SpentInfoStrategy) Name() string { return "getspentinfo" }

func (s SpentInfoStrategy) FindSpending(ctx context.Context, c *Client, outPoint wire.OutPoint) (*chainhash.Hash, error) {
	type request struct {
		TxID  string `json:"txid"`
		Index uint32 `json:"index"`
	}
	raw, err := c.call(ctx, s.Name(), request{TxID: outPoint.Hash.String(), Index: outPoint.Index})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if isNullResult(raw) {
		return nil, nil
	}

	var result struct {
		TxID string `json:"txid"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid %s result: %v", s.Name(), err)
	}
	if result.TxID == "" {
		return nil, nil
	}
	return parseTxID(result.TxID)
}

// AddressHistoryStrategy scans the wallet's history of the address that owns the output.
// It only works when the address is watched by the node wallet.
type AddressHistoryStrategy struct{}

func (AddressHistoryStrategy) Name() string { return "listreceivedbyaddress" }

func (s AddressHistoryStrategy) FindSpending(ctx context.Context, c *Client, outPoint wire.OutPoint) (*chainhash.Hash, error) {
	funding, err := c.GetTransaction(ctx, outPoint.Hash)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if funding == nil || int(outPoint.Index) >= len(funding.Outputs) {
		return nil, nil
	}
	address := funding.Outputs[outPoint.Index].Address
	if address == "" {
		return nil, nil
	}

	raw, err := c.call(ctx, s.Name(), 0, true, true, address)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var result []struct {
		Address string   `json:"address"`
		TxIDs   []string `json:"txids"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid %s result: %v", s.Name(), err)
	}

	for _, entry := range result {
		for _, txID := range entry.TxIDs {
			txHash, err := chainhash.NewHashFromStr(txID)
			if err != nil || txHash.IsEqual(&outPoint.Hash) {
				continue
			}
			tx, err := c.GetTransaction(ctx, *txHash)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if tx != nil && tx.SpendsOutPoint(outPoint) {
				return txHash, nil
			}
		}
	}
	return nil, nil
}

func parseTxID(txID string) (*chainhash.Hash, error) {
	txHash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, errors.Wrapf(errs.LedgerError, "invalid txid %q", txID)
	}
	return txHash, nil
}
