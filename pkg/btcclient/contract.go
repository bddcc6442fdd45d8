package btcclient

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Contract is the read-only view of the ledger used by the auction engine and validator.
//
// Every method may fail with errs.LedgerPending, errs.LedgerUnavailable or errs.LedgerError, all safe to retry.
// "Absent" results are returned as nil with a nil error.
type Contract interface {
	CurrentHeight(ctx context.Context) (int64, error)

	// GetUTXO returns nil if the output is spent or never existed.
	GetUTXO(ctx context.Context, outPoint wire.OutPoint) (*UTXO, error)
	IsSpent(ctx context.Context, outPoint wire.OutPoint) (bool, error)

	// BatchIsSpent checks outputs in groups. Outputs that could not be checked are missing from the result,
	// a missing key means unknown and must never be read as unspent.
	BatchIsSpent(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint]bool, error)

	// GetTransaction returns nil if the node does not know the transaction.
	GetTransaction(ctx context.Context, txHash chainhash.Hash) (*Transaction, error)

	// GetTransactionDetails returns nil while the transaction is unconfirmed.
	GetTransactionDetails(ctx context.Context, txHash chainhash.Hash) (*TransactionDetails, error)

	// GetRecipientAddress returns "" if the first non OP_RETURN output has no address.
	GetRecipientAddress(ctx context.Context, txHash chainhash.Hash) (string, error)

	// FindSpendingTransaction returns nil if the output is unspent or no lookup strategy found the spender.
	// nil is not a proof of non-spend.
	FindSpendingTransaction(ctx context.Context, outPoint wire.OutPoint) (*chainhash.Hash, error)
}
