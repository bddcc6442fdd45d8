// Package counterparty reads the assets attached to a UTXO from the Counterparty Core REST API.
package counterparty

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/pkg/decimals"
	"github.com/gaze-network/dutch-auction/pkg/httpclient"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

const (
	DefaultURL     = "https://api.counterparty.io:4000"
	DefaultTimeout = 10 * time.Second

	// divisible assets carry 8 decimal places
	divisibleDecimals = 8
)

// Balance is one asset attached to a UTXO.
type Balance struct {
	Asset string

	// Quantity is in base units. QuantityNormalized is Quantity / 10^8 for divisible assets.
	Quantity           decimal.Decimal
	QuantityNormalized decimal.Decimal
	Divisible          bool
}

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client, err := httpclient.New(baseURL, httpclient.Config{
		Timeout: timeout,
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create counterparty http client")
	}
	return &Client{http: client}, nil
}

type balancesResponse struct {
	Result []struct {
		Asset              string          `json:"asset"`
		Quantity           decimal.Decimal `json:"quantity"`
		QuantityNormalized decimal.Decimal `json:"quantity_normalized"`
		AssetInfo          struct {
			Divisible bool `json:"divisible"`
		} `json:"asset_info"`
	} `json:"result"`
	Error string `json:"error"`
}

// GetUTXOBalances returns every asset attached to the output.
func (c *Client) GetUTXOBalances(ctx context.Context, outPoint wire.OutPoint) ([]Balance, error) {
	path := fmt.Sprintf("/v2/utxos/%s:%d/balances", outPoint.Hash, outPoint.Index)
	resp, err := c.http.Get(ctx, path, httpclient.RequestOptions{
		Query: url.Values{"verbose": []string{"true"}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't request utxo balances")
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, errors.Errorf("unexpected status %d from %s", resp.StatusCode(), resp.URL)
	}

	var body balancesResponse
	if err := resp.UnmarshalBody(&body); err != nil {
		return nil, errors.WithStack(err)
	}
	if body.Error != "" {
		return nil, errors.Errorf("counterparty error: %s", body.Error)
	}

	balances := make([]Balance, 0, len(body.Result))
	for _, r := range body.Result {
		normalized := r.QuantityNormalized
		if normalized.IsZero() && !r.Quantity.IsZero() {
			normalized = r.Quantity
			if r.AssetInfo.Divisible {
				normalized = decimals.ToDecimal(r.Quantity, divisibleDecimals)
			}
		}
		balances = append(balances, Balance{
			Asset:              r.Asset,
			Quantity:           r.Quantity,
			QuantityNormalized: normalized,
			Divisible:          r.AssetInfo.Divisible,
		})
	}
	return balances, nil
}

// VerifyUTXOAsset checks that the output carries exactly one asset, named asset, at exactly quantity.
// quantity is compared to the normalized amount for divisible assets and to the base units otherwise.
// Mismatches are returned as errs.PublicError wrapping errs.InvalidArgument.
func (c *Client) VerifyUTXOAsset(ctx context.Context, outPoint wire.OutPoint, asset string, quantity decimal.Decimal) (*Balance, error) {
	balances, err := c.GetUTXOBalances(ctx, outPoint)
	if err != nil {
		logger.WarnContext(ctx, "Failed to get UTXO balances", slogx.Stringer("outpoint", outPoint), slogx.Error(err))
		return nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Failed to get UTXO balances for %s", outPoint)
	}
	return MatchSingleAsset(balances, asset, quantity)
}

// MatchSingleAsset applies the single asset rule of VerifyUTXOAsset to already fetched balances.
func MatchSingleAsset(balances []Balance, asset string, quantity decimal.Decimal) (*Balance, error) {
	switch len(balances) {
	case 0:
		return nil, errs.NewPublicErrorKind(errs.InvalidArgument, "No assets found on UTXO")
	case 1:
	default:
		return nil, errs.NewPublicErrorKind(errs.InvalidArgument, "UTXO has %d assets attached. Only single asset UTXOs are supported.", len(balances))
	}

	balance := balances[0]
	if balance.Asset != asset {
		return nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Asset mismatch. Expected '%s', found '%s'", asset, balance.Asset)
	}

	actual, kind := balance.Quantity, "indivisible"
	if balance.Divisible {
		actual, kind = balance.QuantityNormalized, "divisible"
	}
	if !actual.Equal(quantity) {
		return nil, errs.NewPublicErrorKind(errs.InvalidArgument, "Quantity mismatch. Expected %s, found %s (%s asset)", quantity, actual, kind)
	}
	return &balance, nil
}
