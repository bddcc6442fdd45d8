package btcclient

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

type UTXO struct {
	OutPoint      wire.OutPoint
	Value         int64 // sats
	PkScript      []byte
	Address       string // empty for non-standard scripts
	Confirmations int64
}

type TxOutput struct {
	Index    uint32
	Value    int64 // sats
	PkScript []byte
	Address  string
}

type Transaction struct {
	TxHash        chainhash.Hash
	Inputs        []wire.OutPoint // coinbase inputs are omitted
	Outputs       []TxOutput
	Confirmations int64
	BlockTime     int64 // unix seconds, zero while unconfirmed
}

type TransactionDetails struct {
	BlockHeight int64
	BlockTime   time.Time
}

// SpendsOutPoint reports whether the transaction has an input spending outPoint.
func (t *Transaction) SpendsOutPoint(outPoint wire.OutPoint) bool {
	for _, in := range t.Inputs {
		if in == outPoint {
			return true
		}
	}
	return false
}
