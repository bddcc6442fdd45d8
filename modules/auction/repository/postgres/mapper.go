package postgres

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/repository/postgres/gen"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func decimalFromNumeric(src pgtype.Numeric) (decimal.Decimal, error) {
	if !src.Valid {
		return decimal.Zero, nil
	}
	if src.NaN || src.InfinityModifier != pgtype.Finite {
		return decimal.Zero, errors.New("numeric is not a finite number")
	}
	if src.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(src.Int, src.Exp), nil
}

func numericFromDecimal(src decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   src.Coefficient(),
		Exp:   src.Exponent(),
		Valid: true,
	}
}

func textFromPtr(src *string) pgtype.Text {
	if src == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *src, Valid: true}
}

func ptrFromText(src pgtype.Text) *string {
	if !src.Valid {
		return nil
	}
	return lo.ToPtr(src.String)
}

func mapAuctionModelToType(src gen.Auction) (*entity.Auction, error) {
	assetQty, err := decimalFromNumeric(src.AssetQty)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset_qty of auction %d", src.ID)
	}
	utxoHash, err := chainhash.NewHashFromStr(src.UtxoTxid)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid utxo_txid of auction %d", src.ID)
	}

	auction := &entity.Auction{
		ID:             src.ID,
		AssetName:      src.AssetName,
		AssetQty:       assetQty,
		UTXO:           wire.OutPoint{Hash: *utxoHash, Index: uint32(src.UtxoVout)},
		StartBlock:     src.StartBlock,
		EndBlock:       src.EndBlock,
		BlocksAfterEnd: src.BlocksAfterEnd,
		StartPrice:     src.StartPriceSats,
		EndPrice:       src.EndPriceSats,
		PriceDecrement: src.PriceDecrement,
		Status:         entity.Status(src.Status),
		Recipient:      ptrFromText(src.Recipient),
		Seller:         ptrFromText(src.Seller),
	}
	if src.SpentTxid.Valid {
		spentTxHash, err := chainhash.NewHashFromStr(src.SpentTxid.String)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid spent_txid of auction %d", src.ID)
		}
		auction.SpentTxHash = spentTxHash
	}
	if src.SpentBlock.Valid {
		auction.SpentBlock = lo.ToPtr(src.SpentBlock.Int64)
	}
	if src.SpentAt.Valid {
		auction.SpentAt = lo.ToPtr(src.SpentAt.Time.UTC())
	}
	if src.CreatedAt.Valid {
		auction.CreatedAt = src.CreatedAt.Time.UTC()
	}
	return auction, nil
}

func mapAuctionModelsToTypes(srcs []gen.Auction) ([]*entity.Auction, error) {
	auctions := make([]*entity.Auction, 0, len(srcs))
	for _, src := range srcs {
		auction, err := mapAuctionModelToType(src)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

func mapAuctionTypeToParams(src *entity.Auction) gen.CreateAuctionParams {
	return gen.CreateAuctionParams{
		AssetName:      src.AssetName,
		AssetQty:       numericFromDecimal(src.AssetQty),
		UtxoTxid:       src.UTXO.Hash.String(),
		UtxoVout:       int32(src.UTXO.Index),
		StartBlock:     src.StartBlock,
		EndBlock:       src.EndBlock,
		BlocksAfterEnd: src.BlocksAfterEnd,
		StartPriceSats: src.StartPrice,
		EndPriceSats:   src.EndPrice,
		PriceDecrement: src.PriceDecrement,
		Status:         string(src.Status),
		Seller:         textFromPtr(src.Seller),
	}
}

func mapUpdateAuctionParams(id int64, status *entity.Status, spentTxHash *chainhash.Hash, spentBlock *int64, spentAt *time.Time, recipient *string) gen.UpdateAuctionParams {
	params := gen.UpdateAuctionParams{
		ID:        id,
		Recipient: textFromPtr(recipient),
	}
	if status != nil {
		params.Status = pgtype.Text{String: string(*status), Valid: true}
	}
	if spentTxHash != nil {
		params.SpentTxid = pgtype.Text{String: spentTxHash.String(), Valid: true}
	}
	if spentBlock != nil {
		params.SpentBlock = pgtype.Int8{Int64: *spentBlock, Valid: true}
	}
	if spentAt != nil {
		params.SpentAt = pgtype.Timestamptz{Time: spentAt.UTC(), Valid: true}
	}
	return params
}

func mapPriceRungModelToType(src gen.Psbt) *entity.PriceRung {
	return &entity.PriceRung{
		ID:          src.ID,
		AuctionID:   src.AuctionID,
		BlockNumber: src.BlockNumber,
		Price:       src.PriceSats,
		PSBT:        src.PsbtData,
	}
}

func mapPriceRungTypeToParams(src *entity.PriceRung) gen.CreatePriceRungsParams {
	return gen.CreatePriceRungsParams{
		AuctionID:   src.AuctionID,
		BlockNumber: src.BlockNumber,
		PriceSats:   src.Price,
		PsbtData:    src.PSBT,
	}
}
