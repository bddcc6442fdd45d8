// Package validator checks auction submissions before they are admitted.
package validator

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
	"github.com/gaze-network/dutch-auction/pkg/btcutils/psbtutils"
	"github.com/gaze-network/dutch-auction/pkg/counterparty"
	"github.com/gaze-network/dutch-auction/pkg/decimals"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaxAssetDecimals is the precision of divisible assets.
const MaxAssetDecimals = 8

type UTXOReader interface {
	GetUTXO(ctx context.Context, outPoint wire.OutPoint) (*btcclient.UTXO, error)
}

type AssetOracle interface {
	VerifyUTXOAsset(ctx context.Context, outPoint wire.OutPoint, asset string, quantity decimal.Decimal) (*counterparty.Balance, error)
}

// Submission is a proposed auction. Nil fields were missing from the request.
type Submission struct {
	AssetName      *string
	AssetQty       *decimal.Decimal
	UTXOTxID       *string
	UTXOVout       *int64
	StartBlock     *int64
	EndBlock       *int64
	BlocksAfterEnd *int64
	Rungs          []Rung
}

type Rung struct {
	BlockNumber *int64
	PriceSats   *int64
	PSBT        *string
}

// Admission is a validated submission ready to be persisted.
type Admission struct {
	Auction *entity.Auction
	Rungs   []*entity.PriceRung // sorted by block number
	UTXO    *btcclient.UTXO
	Asset   *counterparty.Balance
}

type Validator struct {
	ledger UTXOReader
	oracle AssetOracle
}

func New(ledger UTXOReader, oracle AssetOracle) *Validator {
	return &Validator{
		ledger: ledger,
		oracle: oracle,
	}
}

func invalid(format string, args ...any) error {
	return errs.NewPublicErrorKind(errs.InvalidArgument, format, args...)
}

// Validate runs every check and stops at the first failure.
// Rejections are errs.PublicError carrying the reason.
func (v *Validator) Validate(ctx context.Context, s Submission) (*Admission, error) {
	auction, rungs, err := parseSubmission(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for i, r := range s.Rungs {
		if err := ValidatePSBT(i, *r.PSBT, auction.UTXO); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err := ValidatePriceProgression(rungs); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := ValidateBlockCoverage(rungs, auction.StartBlock, auction.EndBlock); err != nil {
		return nil, errors.WithStack(err)
	}

	utxo, asset, err := v.validateLedger(ctx, auction)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	auction.StartPrice, auction.EndPrice, auction.PriceDecrement = entity.DerivePricing(rungs)
	auction.Status = entity.StatusUpcoming
	if utxo.Address != "" {
		auction.Seller = lo.ToPtr(utxo.Address)
	}

	logger.InfoContext(ctx, "Validated auction submission",
		slogx.String("asset", auction.AssetName),
		slogx.Stringer("utxo", auction.UTXO),
		slogx.Int("rungs", len(rungs)),
	)
	return &Admission{
		Auction: auction,
		Rungs:   rungs,
		UTXO:    utxo,
		Asset:   asset,
	}, nil
}

func parseSubmission(s Submission) (*entity.Auction, []*entity.PriceRung, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"asset_name", s.AssetName == nil},
		{"asset_qty", s.AssetQty == nil},
		{"utxo_txid", s.UTXOTxID == nil},
		{"utxo_vout", s.UTXOVout == nil},
		{"start_block", s.StartBlock == nil},
		{"end_block", s.EndBlock == nil},
		{"blocks_after_end", s.BlocksAfterEnd == nil},
		{"psbts", s.Rungs == nil},
	}
	for _, field := range required {
		if field.missing {
			return nil, nil, invalid("Missing required field: %s", field.name)
		}
	}

	switch {
	case *s.AssetName == "":
		return nil, nil, invalid("asset_name must be a non-empty string")
	case !s.AssetQty.IsPositive():
		return nil, nil, invalid("asset_qty must be positive")
	case decimals.DecimalPlaces(*s.AssetQty) > MaxAssetDecimals:
		return nil, nil, invalid("asset_qty must have at most %d decimal places", MaxAssetDecimals)
	case *s.UTXOVout < 0 || *s.UTXOVout > int64(^uint32(0)):
		return nil, nil, invalid("utxo_vout must be a non-negative integer")
	case *s.StartBlock <= 0:
		return nil, nil, invalid("start_block must be a positive integer")
	case *s.EndBlock <= 0:
		return nil, nil, invalid("end_block must be a positive integer")
	case *s.EndBlock <= *s.StartBlock:
		return nil, nil, invalid("end_block must be greater than start_block")
	case *s.BlocksAfterEnd < 0:
		return nil, nil, invalid("blocks_after_end must be a non-negative integer")
	case len(s.Rungs) == 0:
		return nil, nil, invalid("psbts must be a non-empty list")
	}

	txHash, err := parseTxID(*s.UTXOTxID)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	rungs := make([]*entity.PriceRung, 0, len(s.Rungs))
	for i, r := range s.Rungs {
		switch {
		case r.BlockNumber == nil:
			return nil, nil, invalid("PSBT %d missing block_number", i)
		case r.PriceSats == nil:
			return nil, nil, invalid("PSBT %d missing price_sats", i)
		case r.PSBT == nil:
			return nil, nil, invalid("PSBT %d missing psbt_data", i)
		case *r.PriceSats <= 0:
			return nil, nil, invalid("PSBT %d price_sats must be a positive integer", i)
		}
		rungs = append(rungs, &entity.PriceRung{
			BlockNumber: *r.BlockNumber,
			Price:       *r.PriceSats,
			PSBT:        *r.PSBT,
		})
	}
	sort.SliceStable(rungs, func(i, j int) bool { return rungs[i].BlockNumber < rungs[j].BlockNumber })

	return &entity.Auction{
		AssetName:      *s.AssetName,
		AssetQty:       *s.AssetQty,
		UTXO:           wire.OutPoint{Hash: *txHash, Index: uint32(*s.UTXOVout)},
		StartBlock:     *s.StartBlock,
		EndBlock:       *s.EndBlock,
		BlocksAfterEnd: *s.BlocksAfterEnd,
	}, rungs, nil
}

func parseTxID(txID string) (*chainhash.Hash, error) {
	if len(txID) != chainhash.MaxHashStringSize {
		return nil, invalid("utxo_txid must be a %d character hex string", chainhash.MaxHashStringSize)
	}
	if _, err := hex.DecodeString(txID); err != nil {
		return nil, invalid("utxo_txid must be a %d character hex string", chainhash.MaxHashStringSize)
	}
	txHash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, invalid("invalid utxo_txid: %v", err)
	}
	return txHash, nil
}

// ValidatePSBT checks that data is a base64 PSBT that spends utxo.
func ValidatePSBT(index int, data string, utxo wire.OutPoint) error {
	raw, err := psbtutils.DecodeRaw(data)
	if err != nil {
		return invalid("Invalid PSBT format: PSBT %d is not valid base64", index)
	}
	if !psbtutils.HasMagic(raw) {
		return invalid("Invalid PSBT format: missing magic bytes")
	}
	packet, err := psbtutils.Parse(raw)
	if err != nil {
		return invalid("Invalid PSBT format: PSBT %d can't be parsed", index)
	}
	spendsUTXO := lo.ContainsBy(packet.UnsignedTx.TxIn, func(in *wire.TxIn) bool {
		return in.PreviousOutPoint == utxo
	})
	if !spendsUTXO {
		return invalid("PSBT %d does not spend UTXO %s", index, utxo)
	}
	return nil
}

// ValidatePriceProgression checks that prices never increase with the block number.
// rungs must be sorted by block number.
func ValidatePriceProgression(rungs []*entity.PriceRung) error {
	if len(rungs) == 0 {
		return invalid("No PSBTs provided")
	}
	for i := 1; i < len(rungs); i++ {
		prev, next := rungs[i-1], rungs[i]
		if next.Price > prev.Price {
			return invalid("Invalid price progression: price increases from %d to %d at block %d", prev.Price, next.Price, next.BlockNumber)
		}
	}
	return nil
}

// ValidateBlockCoverage checks that rungs cover every block of [start, end] exactly once.
// rungs must be sorted by block number.
func ValidateBlockCoverage(rungs []*entity.PriceRung, start, end int64) error {
	if len(rungs) == 0 {
		return invalid("No PSBTs provided")
	}
	if first := rungs[0].BlockNumber; first != start {
		return invalid("First PSBT block (%d) doesn't match start_block (%d)", first, start)
	}
	if last := rungs[len(rungs)-1].BlockNumber; last != end {
		return invalid("Last PSBT block (%d) doesn't match end_block (%d)", last, end)
	}

	counts := make(map[int64]int, len(rungs))
	for _, rung := range rungs {
		counts[rung.BlockNumber]++
	}

	var missing, duplicated []int64
	for block := start; block <= end; block++ {
		switch counts[block] {
		case 0:
			missing = append(missing, block)
		case 1:
		default:
			duplicated = append(duplicated, block)
		}
	}
	if len(missing) > 0 {
		return invalid("Missing PSBTs for blocks: %s", formatBlocks(missing))
	}
	if len(duplicated) > 0 {
		return invalid("Duplicate PSBTs for blocks: %s", formatBlocks(duplicated))
	}
	return nil
}

func formatBlocks(blocks []int64) string {
	return fmt.Sprint(blocks)
}

// validateLedger checks the UTXO and its attached asset concurrently.
func (v *Validator) validateLedger(ctx context.Context, auction *entity.Auction) (*btcclient.UTXO, *counterparty.Balance, error) {
	var (
		utxo     *btcclient.UTXO
		asset    *counterparty.Balance
		utxoErr  error
		assetErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		utxo, utxoErr = v.ledger.GetUTXO(ctx, auction.UTXO)
		return nil
	})
	g.Go(func() error {
		asset, assetErr = v.oracle.VerifyUTXOAsset(ctx, auction.UTXO, auction.AssetName, auction.AssetQty)
		return nil
	})
	_ = g.Wait()

	if utxoErr != nil {
		if errors.IsAny(utxoErr, errs.LedgerUnavailable, errs.LedgerPending) {
			return nil, nil, errs.NewPublicErrorKind(errs.LedgerUnavailable, "Error validating UTXO: bitcoin node is not available")
		}
		logger.WarnContext(ctx, "Failed to validate UTXO", slogx.Stringer("utxo", auction.UTXO), slogx.Error(utxoErr))
		return nil, nil, invalid("Error validating UTXO %s", auction.UTXO)
	}
	if utxo == nil {
		return nil, nil, invalid("UTXO %s does not exist or is already spent", auction.UTXO)
	}
	if assetErr != nil {
		if e := new(errs.PublicError); errors.As(assetErr, &e) {
			return nil, nil, errors.WithStack(assetErr)
		}
		return nil, nil, invalid("Error validating UTXO asset: %v", assetErr)
	}
	return utxo, asset, nil
}
