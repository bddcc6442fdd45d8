package btcclient

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
)

// RPC error codes reported by Bitcoin Core.
const (
	codeInvalidAddressOrKey = btcjson.ErrRPCInvalidAddressOrKey // -5, no such transaction
	codeInWarmup            = btcjson.ErrRPCInWarmup            // -28
	codeInInitialDownload   = btcjson.ErrRPCClientInInitialDownload
	codeInvalidParameter    = btcjson.ErrRPCInvalidParameter // -8
	codeWallet              = btcjson.ErrRPCWallet
	codeWalletNotFound      = btcjson.ErrRPCWalletNotFound
)

var codeMethodNotFound = btcjson.ErrRPCMethodNotFound.Code // -32601

// classifyError wraps an rpcclient error with the matching ledger error kind.
func classifyError(err error, method string) error {
	if err == nil {
		return nil
	}
	if errors.IsAny(err, errs.LedgerPending, errs.LedgerUnavailable, errs.LedgerError) {
		return errors.Wrap(err, method)
	}

	// Mark keeps the underlying RPC error reachable through errors.As.
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case codeInWarmup, codeInInitialDownload:
			return errors.Wrap(errors.Mark(err, errs.LedgerPending), method)
		default:
			return errors.Wrap(errors.Mark(err, errs.LedgerError), method)
		}
	}
	return errors.Wrap(errors.Mark(err, errs.LedgerUnavailable), method)
}

func isRPCErrorCode(err error, code btcjson.RPCErrorCode) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == code
}

// isStrategyUnsupported reports whether a spending lookup failed because the node can't serve
// that strategy (missing index, unknown method, no wallet) rather than because the node is unreachable.
func isStrategyUnsupported(err error) bool {
	if errors.IsAny(err, errs.LedgerUnavailable, errs.LedgerPending) {
		return false
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case codeMethodNotFound, codeInvalidAddressOrKey, codeInvalidParameter, codeWallet, codeWalletNotFound:
			return true
		}
		return false
	}
	// malformed strategy results
	return errors.Is(err, errs.LedgerError)
}
