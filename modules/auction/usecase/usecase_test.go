package usecase

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway/mocks"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockValidator struct{ mock.Mock }

func (m *mockValidator) Validate(ctx context.Context, submission validator.Submission) (*validator.Admission, error) {
	args := m.Called(ctx, submission)
	admission, _ := args.Get(0).(*validator.Admission)
	return admission, args.Error(1)
}

type watchList []wire.OutPoint

func (w *watchList) Watch(outPoint wire.OutPoint) {
	*w = append(*w, outPoint)
}

// heightClient answers CurrentHeight only.
type heightClient struct {
	btcclient.Contract
	height int64
	err    error
}

func (c heightClient) CurrentHeight(context.Context) (int64, error) {
	return c.height, c.err
}

var testUTXO = wire.OutPoint{Hash: chainhash.Hash{0x01}, Index: 0}

func testAdmission() *validator.Admission {
	return &validator.Admission{
		Auction: &entity.Auction{
			AssetName:  "XCP",
			UTXO:       testUTXO,
			StartBlock: 100,
			EndBlock:   101,
			StartPrice: 500,
			EndPrice:   400,
			Status:     entity.StatusUpcoming,
		},
		Rungs: []*entity.PriceRung{
			{BlockNumber: 100, Price: 500, PSBT: "a"},
			{BlockNumber: 101, Price: 400, PSBT: "b"},
		},
	}
}

func TestCreateAuction(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_auction_and_ladder", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		dgTx := mocks.NewAuctionDataGatewayWithTx(t)
		v := &mockValidator{}
		watched := &watchList{}
		u := New(dg, nil, v, watched)

		v.On("Validate", ctx, mock.Anything).Return(testAdmission(), nil)
		dg.EXPECT().GetAuctionsByUTXO(ctx, testUTXO, entity.StatusUpcoming, entity.StatusActive, entity.StatusFinished).Return(nil, nil)
		dg.EXPECT().BeginAuctionTx(ctx).Return(dgTx, nil)
		dgTx.EXPECT().CreateAuction(ctx, mock.Anything).RunAndReturn(func(_ context.Context, a *entity.Auction) error {
			a.ID = 7
			return nil
		})
		dgTx.EXPECT().CreatePriceRungs(ctx, mock.MatchedBy(func(rungs []*entity.PriceRung) bool {
			return len(rungs) == 2 && rungs[0].AuctionID == 7 && rungs[1].AuctionID == 7
		})).Return(nil)
		dgTx.EXPECT().Commit(ctx).Return(nil)
		dgTx.EXPECT().Rollback(ctx).Return(nil)

		auction, err := u.CreateAuction(ctx, validator.Submission{})
		require.NoError(t, err)
		assert.EqualValues(t, 7, auction.ID)
		assert.Equal(t, watchList{testUTXO}, *watched)
	})
	t.Run("rejects_listed_utxo", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		v := &mockValidator{}
		u := New(dg, nil, v, &watchList{})

		v.On("Validate", ctx, mock.Anything).Return(testAdmission(), nil)
		dg.EXPECT().GetAuctionsByUTXO(ctx, testUTXO, entity.StatusUpcoming, entity.StatusActive, entity.StatusFinished).
			Return([]*entity.Auction{{ID: 1, UTXO: testUTXO, Status: entity.StatusActive}}, nil)

		_, err := u.CreateAuction(ctx, validator.Submission{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Conflict)
		dg.AssertNotCalled(t, "BeginAuctionTx", mock.Anything)
	})
	t.Run("rejected_submission_stores_nothing", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		v := &mockValidator{}
		u := New(dg, nil, v, &watchList{})

		v.On("Validate", ctx, mock.Anything).Return(nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Missing required field: asset_name"))

		_, err := u.CreateAuction(ctx, validator.Submission{})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("failed_insert_rolls_back", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		dgTx := mocks.NewAuctionDataGatewayWithTx(t)
		v := &mockValidator{}
		watched := &watchList{}
		u := New(dg, nil, v, watched)

		v.On("Validate", ctx, mock.Anything).Return(testAdmission(), nil)
		dg.EXPECT().GetAuctionsByUTXO(ctx, testUTXO, entity.StatusUpcoming, entity.StatusActive, entity.StatusFinished).Return(nil, nil)
		dg.EXPECT().BeginAuctionTx(ctx).Return(dgTx, nil)
		dgTx.EXPECT().CreateAuction(ctx, mock.Anything).Return(nil)
		dgTx.EXPECT().CreatePriceRungs(ctx, mock.Anything).Return(errors.New("duplicate key"))
		dgTx.EXPECT().Rollback(ctx).Return(nil)

		_, err := u.CreateAuction(ctx, validator.Submission{})
		require.Error(t, err)
		assert.Empty(t, *watched)
	})
}

func TestGetCurrentPSBT(t *testing.T) {
	ctx := context.Background()
	auction := &entity.Auction{ID: 1, StartBlock: 100, EndBlock: 103, BlocksAfterEnd: 2, Status: entity.StatusActive}
	rung := func(block int64) *entity.PriceRung {
		return &entity.PriceRung{AuctionID: 1, BlockNumber: block, Price: 600 - block}
	}

	testCases := []struct {
		name      string
		height    int64
		status    entity.Status
		wantBlock int64 // 0 when no rung is expected
		reason    string
	}{
		{name: "not_started", height: 99, status: entity.StatusUpcoming, reason: "Auction has not started yet"},
		{name: "first_block", height: 100, status: entity.StatusActive, wantBlock: 100},
		{name: "current_block", height: 102, status: entity.StatusActive, wantBlock: 102},
		{name: "final_rung_after_end", height: 104, status: entity.StatusFinished, wantBlock: 103},
		{name: "cleanup", height: 105, status: entity.StatusFinished, reason: "Auction has ended and is in cleanup period"},
		{name: "sold", height: 102, status: entity.StatusSold, reason: "Auction is sold"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dg := mocks.NewAuctionDataGatewayWithTx(t)
			u := New(dg, heightClient{height: tc.height}, &mockValidator{}, &watchList{})

			a := *auction
			a.Status = tc.status
			dg.EXPECT().GetAuctionByID(ctx, int64(1)).Return(&a, nil)
			if tc.wantBlock != 0 {
				dg.EXPECT().GetPriceRung(ctx, int64(1), tc.wantBlock).Return(rung(tc.wantBlock), nil)
			}

			result, err := u.GetCurrentPSBT(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.height, result.CurrentBlock)
			if tc.wantBlock == 0 {
				assert.Nil(t, result.Rung)
				assert.Equal(t, tc.reason, result.Reason)
				return
			}
			require.NotNil(t, result.Rung)
			assert.Equal(t, tc.wantBlock, result.Rung.BlockNumber)
		})
	}

	t.Run("no_cleanup_window_keeps_end_block", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		u := New(dg, heightClient{height: 103}, &mockValidator{}, &watchList{})
		a := *auction
		a.BlocksAfterEnd = 0
		dg.EXPECT().GetAuctionByID(ctx, int64(1)).Return(&a, nil)
		dg.EXPECT().GetPriceRung(ctx, int64(1), int64(103)).Return(rung(103), nil)

		result, err := u.GetCurrentPSBT(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, result.Rung)
	})
	t.Run("node_down", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		u := New(dg, heightClient{err: errors.New("connection refused")}, &mockValidator{}, &watchList{})
		dg.EXPECT().GetAuctionByID(ctx, int64(1)).Return(auction, nil)

		_, err := u.GetCurrentPSBT(ctx, 1)
		assert.ErrorIs(t, err, errs.LedgerUnavailable)
	})
	t.Run("missing_rung", func(t *testing.T) {
		dg := mocks.NewAuctionDataGatewayWithTx(t)
		u := New(dg, heightClient{height: 101}, &mockValidator{}, &watchList{})
		dg.EXPECT().GetAuctionByID(ctx, int64(1)).Return(auction, nil)
		dg.EXPECT().GetPriceRung(ctx, int64(1), int64(101)).Return(nil, errors.WithStack(errs.NotFound))

		_, err := u.GetCurrentPSBT(ctx, 1)
		assert.ErrorIs(t, err, errs.NotFound)
	})
}
