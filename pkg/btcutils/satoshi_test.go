package btcutils

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatoshiConversion(t *testing.T) {
	testcases := []struct {
		btc  string
		sats int64
	}{
		{"2.29980951", 229980951},
		{"1.29609085", 129609085},
		{"1.2768897", 127688970},
		{"0.62518296", 62518296},
		{"0.29998462", 29998462},
		{"0.1251", 12510000},
		{"0.02016011", 2016011},
		{"0.0198473", 1984730},
		{"0.0051711", 517110},
		{"0.0012", 120000},
		{"0.00007", 7000},
		{"0.00003835", 3835},
		{"0.00001962", 1962},
		{"0.00000400", 400},
		{"0", 0},
	}
	for _, testcase := range testcases {
		t.Run(fmt.Sprintf("BtcToSats/%s", testcase.btc), func(t *testing.T) {
			sats, err := ParseBitcoinToSatoshi(testcase.btc)
			require.NoError(t, err)
			assert.Equal(t, testcase.sats, sats)
		})
		t.Run(fmt.Sprintf("SatsToBtc/%s", testcase.btc), func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(testcase.btc).Equal(SatoshiToBitcoin(testcase.sats)))
		})
	}
}

func TestSatoshiRounding(t *testing.T) {
	testcases := []struct {
		btc  string
		sats int64
	}{
		{"0.000000005", 1},
		{"0.000000004999", 0},
		{"0.000004005", 401},
		{"0.000003994", 399},
		{"1.000000015", 100000002},
	}
	for _, testcase := range testcases {
		t.Run(testcase.btc, func(t *testing.T) {
			sats, err := ParseBitcoinToSatoshi(testcase.btc)
			require.NoError(t, err)
			assert.Equal(t, testcase.sats, sats)
		})
	}
}

func TestParseBitcoinToSatoshiInvalid(t *testing.T) {
	for _, v := range []string{"", "abc", "-0.1"} {
		t.Run(v, func(t *testing.T) {
			_, err := ParseBitcoinToSatoshi(v)
			assert.Error(t, err)
		})
	}
}
