package httphandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway/mocks"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gaze-network/dutch-auction/modules/auction/usecase"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/errorhandler"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "secret"

type mockValidator struct{ mock.Mock }

func (m *mockValidator) Validate(ctx context.Context, submission validator.Submission) (*validator.Admission, error) {
	args := m.Called(ctx, submission)
	admission, _ := args.Get(0).(*validator.Admission)
	return admission, args.Error(1)
}

type noopWatcher struct{}

func (noopWatcher) Watch(wire.OutPoint) {}

type heightClient struct {
	btcclient.Contract
	height int64
	err    error
}

func (c heightClient) CurrentHeight(context.Context) (int64, error) {
	return c.height, c.err
}

type testServer struct {
	app       *fiber.App
	dg        *mocks.AuctionDataGatewayWithTx
	validator *mockValidator
}

func newTestServer(t *testing.T, node heightClient) *testServer {
	t.Helper()
	dg := mocks.NewAuctionDataGatewayWithTx(t)
	v := &mockValidator{}
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(usecase.New(dg, node, v, noopWatcher{}), testAPIKey).Mount(app))
	return &testServer{app: app, dg: dg, validator: v}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func testAuction() *entity.Auction {
	return &entity.Auction{
		ID:             5,
		AssetName:      "XCP",
		AssetQty:       decimal.RequireFromString("1.5"),
		UTXO:           wire.OutPoint{Hash: chainhash.Hash{0x01}, Index: 2},
		StartBlock:     100,
		EndBlock:       103,
		BlocksAfterEnd: 0,
		StartPrice:     500,
		EndPrice:       200,
		PriceDecrement: 100,
		Status:         entity.StatusActive,
	}
}

func postAuction(body, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auctions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	return req
}

func TestCreateAuction(t *testing.T) {
	const body = `{"asset_name":"XCP","asset_qty":1.5,"utxo_txid":"aa","utxo_vout":2,"start_block":100,"end_block":103,"blocks_after_end":0,"psbts":[{"block_number":100,"price_sats":500,"psbt_data":"cHNidP8="}]}`

	t.Run("requires_api_key", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		status, out := s.do(t, postAuction(body, ""))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "API key required", out["error"])

		status, out = s.do(t, postAuction(body, "wrong"))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid API key", out["error"])
	})
	t.Run("created", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		dgTx := mocks.NewAuctionDataGatewayWithTx(t)
		auction := testAuction()
		auction.ID = 0
		auction.Status = entity.StatusUpcoming

		s.validator.On("Validate", mock.Anything, mock.MatchedBy(func(sub validator.Submission) bool {
			return *sub.AssetName == "XCP" && sub.AssetQty.Equal(decimal.RequireFromString("1.5")) && len(sub.Rungs) == 1 && *sub.Rungs[0].PriceSats == 500
		})).Return(&validator.Admission{Auction: auction, Rungs: []*entity.PriceRung{{BlockNumber: 100, Price: 500}}}, nil)
		s.dg.EXPECT().GetAuctionsByUTXO(mock.Anything, auction.UTXO, entity.StatusUpcoming, entity.StatusActive, entity.StatusFinished).Return(nil, nil)
		s.dg.EXPECT().BeginAuctionTx(mock.Anything).Return(dgTx, nil)
		dgTx.EXPECT().CreateAuction(mock.Anything, auction).RunAndReturn(func(_ context.Context, a *entity.Auction) error {
			a.ID = 9
			return nil
		})
		dgTx.EXPECT().CreatePriceRungs(mock.Anything, mock.Anything).Return(nil)
		dgTx.EXPECT().Commit(mock.Anything).Return(nil)
		dgTx.EXPECT().Rollback(mock.Anything).Return(nil)

		status, out := s.do(t, postAuction(body, testAPIKey))
		require.Equal(t, http.StatusCreated, status, out)
		assert.EqualValues(t, 9, out["auction_id"])
		assert.Equal(t, true, out["success"])
		created := out["auction"].(map[string]any)
		assert.Equal(t, "upcoming", created["status"])
		assert.EqualValues(t, 1.5, created["asset_qty"])
	})
	t.Run("rejected", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		s.validator.On("Validate", mock.Anything, mock.Anything).
			Return(nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Missing PSBTs for blocks: [101 102 103]"))

		status, out := s.do(t, postAuction(body, testAPIKey))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Missing PSBTs for blocks: [101 102 103]", out["error"])
	})
	t.Run("empty_body", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		status, out := s.do(t, postAuction("", testAPIKey))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "No data provided", out["error"])
	})
}

func TestGetAuctions(t *testing.T) {
	t.Run("filter", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		s.dg.EXPECT().GetAuctions(mock.Anything, entity.StatusActive).Return([]*entity.Auction{testAuction()}, nil)

		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions?status=active", nil))
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, out["count"])
		auctions := out["auctions"].([]any)
		first := auctions[0].(map[string]any)
		assert.Equal(t, chainhash.Hash{0x01}.String(), first["utxo_txid"])
		assert.NotContains(t, first, "psbts")
	})
	t.Run("invalid_filter", func(t *testing.T) {
		s := newTestServer(t, heightClient{})
		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions?status=pending", nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid status filter", out["error"])
	})
}

func TestGetAuction(t *testing.T) {
	s := newTestServer(t, heightClient{})
	s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(5)).Return(testAuction(), nil)
	s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(6)).Return(nil, errors.WithStack(errs.NotFound))

	status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/5", nil))
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 5, out["auction"].(map[string]any)["id"])

	status, out = s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/6", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Auction not found", out["error"])
}

func TestGetCurrentPSBT(t *testing.T) {
	t.Run("current_rung", func(t *testing.T) {
		s := newTestServer(t, heightClient{height: 101})
		s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(5)).Return(testAuction(), nil)
		s.dg.EXPECT().GetPriceRung(mock.Anything, int64(5), int64(101)).
			Return(&entity.PriceRung{ID: 2, AuctionID: 5, BlockNumber: 101, Price: 400, PSBT: "cHNidP8="}, nil)

		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/5/current-psbt", nil))
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 101, out["current_block"])
		psbt := out["psbt"].(map[string]any)
		assert.EqualValues(t, 400, psbt["price_sats"])
		assert.EqualValues(t, 101, psbt["block_number"])
	})
	t.Run("not_started", func(t *testing.T) {
		s := newTestServer(t, heightClient{height: 90})
		s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(5)).Return(testAuction(), nil)

		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/5/current-psbt", nil))
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, out["psbt"])
		assert.EqualValues(t, 100, out["starts_at_block"])
	})
	t.Run("node_down", func(t *testing.T) {
		s := newTestServer(t, heightClient{err: errors.New("connection refused")})
		s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(5)).Return(testAuction(), nil)

		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/5/current-psbt", nil))
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "Unable to get current block height", out["error"])
	})
	t.Run("unknown_auction", func(t *testing.T) {
		s := newTestServer(t, heightClient{height: 101})
		s.dg.EXPECT().GetAuctionByID(mock.Anything, int64(8)).Return(nil, errors.WithStack(errs.NotFound))

		status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auctions/8/current-psbt", nil))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Auction not found", out["error"])
	})
}

func TestGetHealth(t *testing.T) {
	s := newTestServer(t, heightClient{height: 840000})
	status, out := s.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", out["bitcoin_rpc"])
	assert.EqualValues(t, 840000, out["current_block"])

	s = newTestServer(t, heightClient{err: errors.New("connection refused")})
	status, out = s.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, out["bitcoin_rpc"], "connection refused")
	assert.Nil(t, out["current_block"])
}
