package decimals

import (
	"math"
	"math/big"
	"reflect"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal convert any integer type to decimal.Decimal shifted by decimals places (safety floating point)
func ToDecimal[T constraints.Integer](ivalue any, decimals T) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case *big.Int:
		value = v
	case int64:
		value = big.NewInt(v)
	case int, int8, int16, int32:
		rValue := reflect.ValueOf(v)
		value.SetInt64(rValue.Int())
	case uint64:
		value = big.NewInt(0).SetUint64(v)
	case uint, uint8, uint16, uint32:
		rValue := reflect.ValueOf(v)
		value.SetUint64(rValue.Uint())
	case []byte:
		value.SetBytes(v)
	case decimal.Decimal:
		value = v.BigInt()
	}

	switch {
	case int64(decimals) > math.MaxInt32:
		logger.Panic("ToDecimal: decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	case int64(decimals) < math.MinInt32+1:
		logger.Panic("ToDecimal: decimals is too small, should be greater than -2^31", slogx.Any("decimals", decimals))
	}

	return decimal.NewFromBigInt(value, -int32(decimals))
}

// DecimalPlaces returns the number of significant fractional digits, ignoring trailing zeros.
// "1.50000000" has 1 decimal place.
func DecimalPlaces(d decimal.Decimal) int32 {
	if d.Exponent() >= 0 {
		return 0
	}
	coefficient := d.Coefficient()
	places := -d.Exponent()
	ten := big.NewInt(10)
	mod := new(big.Int)
	for places > 0 && coefficient.Sign() != 0 {
		quo, rem := new(big.Int).QuoRem(coefficient, ten, mod)
		if rem.Sign() != 0 {
			break
		}
		coefficient = quo
		places--
	}
	if coefficient.Sign() == 0 {
		return 0
	}
	return places
}

// IsInteger reports whether d has no fractional part.
func IsInteger(d decimal.Decimal) bool {
	return DecimalPlaces(d) == 0
}
