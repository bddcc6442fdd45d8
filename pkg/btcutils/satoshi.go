package btcutils

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/pkg/decimals"
	"github.com/shopspring/decimal"
)

const (
	BitcoinDecimals = 8
)

// satsUnit is 10^8
var satsUnit = decimals.PowerOfTen(BitcoinDecimals)

// BitcoinToSatoshi converts a amount in Bitcoin format to Satoshi format.
// Fractions of a satoshi are rounded half-up.
func BitcoinToSatoshi(v decimal.Decimal) int64 {
	return v.Mul(satsUnit).Round(0).IntPart()
}

// ParseBitcoinToSatoshi parses a decimal Bitcoin amount (as returned by the node, e.g. "0.00000400")
// without going through float64.
func ParseBitcoinToSatoshi(v string) (int64, error) {
	amount, err := decimal.NewFromString(v)
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid bitcoin amount %q", v)
	}
	if amount.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "negative bitcoin amount %q", v)
	}
	return BitcoinToSatoshi(amount), nil
}

// SatoshiToBitcoin converts a amount in Satoshi format to Bitcoin format.
func SatoshiToBitcoin(v int64) decimal.Decimal {
	return decimal.New(v, -BitcoinDecimals)
}
