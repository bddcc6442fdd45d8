package validator

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/btcutils/psbtutils"
	"github.com/gaze-network/dutch-auction/pkg/counterparty"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

type mockLedger struct{ mock.Mock }

func (m *mockLedger) GetUTXO(ctx context.Context, outPoint wire.OutPoint) (*btcclient.UTXO, error) {
	args := m.Called(ctx, outPoint)
	utxo, _ := args.Get(0).(*btcclient.UTXO)
	return utxo, args.Error(1)
}

type mockOracle struct{ mock.Mock }

func (m *mockOracle) VerifyUTXOAsset(ctx context.Context, outPoint wire.OutPoint, asset string, quantity decimal.Decimal) (*counterparty.Balance, error) {
	args := m.Called(ctx, outPoint, asset, quantity)
	balance, _ := args.Get(0).(*counterparty.Balance)
	return balance, args.Error(1)
}

func testOutPoint(t *testing.T) wire.OutPoint {
	t.Helper()
	hash, err := chainhash.NewHashFromStr(testTxID)
	require.NoError(t, err)
	return wire.OutPoint{Hash: *hash, Index: 0}
}

func testPSBT(t *testing.T, spends wire.OutPoint, price int64) string {
	t.Helper()
	packet, err := psbt.New(
		[]*wire.OutPoint{&spends},
		[]*wire.TxOut{wire.NewTxOut(price, []byte{0x51})},
		2, 0, []uint32{wire.MaxTxInSequenceNum},
	)
	require.NoError(t, err)
	encoded, err := psbtutils.EncodeToString(packet)
	require.NoError(t, err)
	return encoded
}

func testSubmission(t *testing.T, prices ...int64) Submission {
	t.Helper()
	op := testOutPoint(t)
	rungs := make([]Rung, 0, len(prices))
	for i, price := range prices {
		rungs = append(rungs, Rung{
			BlockNumber: lo.ToPtr(int64(100 + i)),
			PriceSats:   lo.ToPtr(price),
			PSBT:        lo.ToPtr(testPSBT(t, op, price)),
		})
	}
	return Submission{
		AssetName:      lo.ToPtr("XCP"),
		AssetQty:       lo.ToPtr(decimal.NewFromInt(1000)),
		UTXOTxID:       lo.ToPtr(testTxID),
		UTXOVout:       lo.ToPtr(int64(0)),
		StartBlock:     lo.ToPtr(int64(100)),
		EndBlock:       lo.ToPtr(int64(100 + len(prices) - 1)),
		BlocksAfterEnd: lo.ToPtr(int64(144)),
		Rungs:          rungs,
	}
}

func newTestValidator(t *testing.T) (*Validator, *mockLedger, *mockOracle) {
	t.Helper()
	ledger, oracle := &mockLedger{}, &mockOracle{}
	return New(ledger, oracle), ledger, oracle
}

func expectHealthyLedger(t *testing.T, ledger *mockLedger, oracle *mockOracle) {
	t.Helper()
	op := testOutPoint(t)
	ledger.On("GetUTXO", mock.Anything, op).Return(&btcclient.UTXO{
		OutPoint: op,
		Value:    546,
		Address:  "bcrt1qseller",
	}, nil)
	oracle.On("VerifyUTXOAsset", mock.Anything, op, "XCP", mock.Anything).Return(&counterparty.Balance{
		Asset:    "XCP",
		Quantity: decimal.NewFromInt(1000),
	}, nil)
}

func requireRejected(t *testing.T, err error, contains string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.InvalidArgument)
	var publicErr *errs.PublicError
	require.True(t, errors.As(err, &publicErr))
	assert.Contains(t, publicErr.Message(), contains)
}

func TestValidate(t *testing.T) {
	t.Run("accepts_valid_submission", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		expectHealthyLedger(t, ledger, oracle)

		admission, err := v.Validate(context.Background(), testSubmission(t, 500, 400, 400, 300))
		require.NoError(t, err)

		auction := admission.Auction
		assert.Equal(t, entity.StatusUpcoming, auction.Status)
		assert.EqualValues(t, 500, auction.StartPrice)
		assert.EqualValues(t, 300, auction.EndPrice)
		assert.EqualValues(t, 66, auction.PriceDecrement)
		assert.Equal(t, lo.ToPtr("bcrt1qseller"), auction.Seller)
		require.Len(t, admission.Rungs, 4)
		assert.EqualValues(t, 103, admission.Rungs[3].BlockNumber)
		ledger.AssertExpectations(t)
		oracle.AssertExpectations(t)
	})
	t.Run("sorts_unordered_rungs", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		expectHealthyLedger(t, ledger, oracle)

		s := testSubmission(t, 300, 200)
		s.Rungs[0], s.Rungs[1] = s.Rungs[1], s.Rungs[0]
		admission, err := v.Validate(context.Background(), s)
		require.NoError(t, err)
		assert.EqualValues(t, 100, admission.Rungs[0].BlockNumber)
		assert.EqualValues(t, 300, admission.Auction.StartPrice)
	})
	t.Run("rejects_missing_field", func(t *testing.T) {
		v, _, _ := newTestValidator(t)
		s := testSubmission(t, 500, 400)
		s.BlocksAfterEnd = nil
		_, err := v.Validate(context.Background(), s)
		requireRejected(t, err, "Missing required field: blocks_after_end")
	})
	t.Run("rejects_increasing_price", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		_, err := v.Validate(context.Background(), testSubmission(t, 500, 400, 450, 300))
		requireRejected(t, err, "price increases from 400 to 450 at block 102")
		ledger.AssertNotCalled(t, "GetUTXO", mock.Anything, mock.Anything)
		oracle.AssertNotCalled(t, "VerifyUTXOAsset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
	t.Run("rejects_gap_in_coverage", func(t *testing.T) {
		v, _, _ := newTestValidator(t)
		s := testSubmission(t, 500, 400, 300, 200)
		s.Rungs = append(s.Rungs[:2], s.Rungs[3])
		_, err := v.Validate(context.Background(), s)
		requireRejected(t, err, "Missing PSBTs for blocks: [102]")
	})
	t.Run("rejects_end_before_start", func(t *testing.T) {
		v, _, _ := newTestValidator(t)
		s := testSubmission(t, 500, 400)
		s.EndBlock = lo.ToPtr(int64(100))
		_, err := v.Validate(context.Background(), s)
		requireRejected(t, err, "end_block must be greater than start_block")
	})
	t.Run("rejects_bad_quantity", func(t *testing.T) {
		v, _, _ := newTestValidator(t)
		for _, qty := range []string{"0", "-1", "0.000000001"} {
			s := testSubmission(t, 500, 400)
			s.AssetQty = lo.ToPtr(decimal.RequireFromString(qty))
			_, err := v.Validate(context.Background(), s)
			require.Error(t, err, qty)
			assert.ErrorIs(t, err, errs.InvalidArgument, qty)
		}
	})
	t.Run("rejects_short_txid", func(t *testing.T) {
		v, _, _ := newTestValidator(t)
		s := testSubmission(t, 500, 400)
		s.UTXOTxID = lo.ToPtr("abcd")
		_, err := v.Validate(context.Background(), s)
		requireRejected(t, err, "utxo_txid")
	})
	t.Run("rejects_missing_utxo", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		op := testOutPoint(t)
		ledger.On("GetUTXO", mock.Anything, op).Return(nil, nil)
		oracle.On("VerifyUTXOAsset", mock.Anything, op, "XCP", mock.Anything).Return(&counterparty.Balance{Asset: "XCP"}, nil)

		_, err := v.Validate(context.Background(), testSubmission(t, 500, 400))
		requireRejected(t, err, "does not exist or is already spent")
	})
	t.Run("rejects_asset_mismatch", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		op := testOutPoint(t)
		ledger.On("GetUTXO", mock.Anything, op).Return(&btcclient.UTXO{OutPoint: op}, nil)
		oracle.On("VerifyUTXOAsset", mock.Anything, op, "XCP", mock.Anything).
			Return(nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Asset mismatch: expected XCP, found PEPECASH"))

		_, err := v.Validate(context.Background(), testSubmission(t, 500, 400))
		requireRejected(t, err, "Asset mismatch")
	})
	t.Run("node_unavailable", func(t *testing.T) {
		v, ledger, oracle := newTestValidator(t)
		op := testOutPoint(t)
		ledger.On("GetUTXO", mock.Anything, op).Return(nil, errors.Mark(errors.New("connection refused"), errs.LedgerUnavailable))
		oracle.On("VerifyUTXOAsset", mock.Anything, op, "XCP", mock.Anything).Return(&counterparty.Balance{Asset: "XCP"}, nil)

		_, err := v.Validate(context.Background(), testSubmission(t, 500, 400))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.LedgerUnavailable))
	})
}

func TestValidatePSBT(t *testing.T) {
	op := testOutPoint(t)

	assert.NoError(t, ValidatePSBT(0, testPSBT(t, op, 500), op))

	t.Run("not_base64", func(t *testing.T) {
		requireRejected(t, ValidatePSBT(0, "***", op), "Invalid PSBT format")
	})
	t.Run("missing_magic", func(t *testing.T) {
		data := base64.StdEncoding.EncodeToString([]byte("not a psbt"))
		requireRejected(t, ValidatePSBT(0, data, op), "missing magic bytes")
	})
	t.Run("truncated", func(t *testing.T) {
		data := base64.StdEncoding.EncodeToString(append(psbtutils.Magic, 0x01, 0x02))
		requireRejected(t, ValidatePSBT(3, data, op), "PSBT 3 can't be parsed")
	})
	t.Run("spends_other_utxo", func(t *testing.T) {
		other := op
		other.Index = 1
		requireRejected(t, ValidatePSBT(1, testPSBT(t, other, 500), op), "does not spend UTXO")
	})
}

func TestValidatePriceProgression(t *testing.T) {
	ladder := func(prices ...int64) []*entity.PriceRung {
		rungs := make([]*entity.PriceRung, 0, len(prices))
		for i, price := range prices {
			rungs = append(rungs, &entity.PriceRung{BlockNumber: int64(100 + i), Price: price})
		}
		return rungs
	}

	assert.NoError(t, ValidatePriceProgression(ladder(500, 400, 400, 300)))
	assert.NoError(t, ValidatePriceProgression(ladder(100)))
	assert.Error(t, ValidatePriceProgression(ladder(500, 400, 450, 300)))
	assert.Error(t, ValidatePriceProgression(nil))
}

func TestValidateBlockCoverage(t *testing.T) {
	ladder := func(blocks ...int64) []*entity.PriceRung {
		return lo.Map(blocks, func(block int64, _ int) *entity.PriceRung {
			return &entity.PriceRung{BlockNumber: block, Price: 100}
		})
	}

	testCases := []struct {
		name     string
		blocks   []int64
		contains string
	}{
		{name: "complete", blocks: []int64{100, 101, 102, 103}},
		{name: "gap", blocks: []int64{100, 101, 103}, contains: "Missing PSBTs for blocks: [102]"},
		{name: "late_start", blocks: []int64{101, 102, 103}, contains: "doesn't match start_block"},
		{name: "early_end", blocks: []int64{100, 101, 102}, contains: "doesn't match end_block"},
		{name: "duplicate", blocks: []int64{100, 101, 101, 102, 103}, contains: "Duplicate PSBTs for blocks: [101]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBlockCoverage(ladder(tc.blocks...), 100, 103)
			if tc.contains == "" {
				assert.NoError(t, err)
				return
			}
			requireRejected(t, err, tc.contains)
		})
	}
}
