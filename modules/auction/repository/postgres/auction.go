package postgres

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
	"github.com/gaze-network/dutch-auction/modules/auction/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

func statusStrings(statuses []entity.Status) []string {
	return lo.Map(statuses, func(s entity.Status, _ int) string { return string(s) })
}

func (r *Repository) GetAuctionByID(ctx context.Context, id int64) (*entity.Auction, error) {
	model, err := r.queries.GetAuctionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(errs.NotFound, "auction %d not found", id)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	auction, err := mapAuctionModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse auction model")
	}
	return auction, nil
}

func (r *Repository) GetAuctions(ctx context.Context, statuses ...entity.Status) ([]*entity.Auction, error) {
	var (
		models []gen.Auction
		err    error
	)
	if len(statuses) == 0 {
		models, err = r.queries.GetAuctions(ctx)
	} else {
		models, err = r.queries.GetAuctionsByStatuses(ctx, statusStrings(statuses))
	}
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	auctions, err := mapAuctionModelsToTypes(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse auction models")
	}
	return auctions, nil
}

func (r *Repository) GetAuctionsByUTXO(ctx context.Context, utxo wire.OutPoint, statuses ...entity.Status) ([]*entity.Auction, error) {
	models, err := r.queries.GetAuctionsByUTXO(ctx, gen.GetAuctionsByUTXOParams{
		UtxoTxid: utxo.Hash.String(),
		UtxoVout: int32(utxo.Index),
		Statuses: statusStrings(statuses),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	auctions, err := mapAuctionModelsToTypes(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse auction models")
	}
	return auctions, nil
}

func (r *Repository) GetAuctionsMissingSpendDetails(ctx context.Context) ([]*entity.Auction, error) {
	models, err := r.queries.GetAuctionsMissingSpendDetails(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	auctions, err := mapAuctionModelsToTypes(models)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse auction models")
	}
	return auctions, nil
}

func (r *Repository) GetPriceRungs(ctx context.Context, auctionID int64) ([]*entity.PriceRung, error) {
	models, err := r.queries.GetPriceRungs(ctx, auctionID)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return lo.Map(models, func(m gen.Psbt, _ int) *entity.PriceRung { return mapPriceRungModelToType(m) }), nil
}

func (r *Repository) GetPriceRung(ctx context.Context, auctionID int64, blockNumber int64) (*entity.PriceRung, error) {
	model, err := r.queries.GetPriceRung(ctx, gen.GetPriceRungParams{
		AuctionID:   auctionID,
		BlockNumber: blockNumber,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(errs.NotFound, "no price rung for auction %d at block %d", auctionID, blockNumber)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapPriceRungModelToType(model), nil
}

func (r *Repository) CreateAuction(ctx context.Context, auction *entity.Auction) error {
	row, err := r.queries.CreateAuction(ctx, mapAuctionTypeToParams(auction))
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	auction.ID = row.ID
	if row.CreatedAt.Valid {
		auction.CreatedAt = row.CreatedAt.Time.UTC()
	}
	return nil
}

func (r *Repository) CreatePriceRungs(ctx context.Context, rungs []*entity.PriceRung) error {
	params := lo.Map(rungs, func(rung *entity.PriceRung, _ int) gen.CreatePriceRungsParams {
		return mapPriceRungTypeToParams(rung)
	})
	if _, err := r.queries.CreatePriceRungs(ctx, params); err != nil {
		return errors.Wrap(err, "error during copy")
	}
	return nil
}

func (r *Repository) UpdateAuction(ctx context.Context, params datagateway.UpdateAuctionParams) error {
	err := r.queries.UpdateAuction(ctx, mapUpdateAuctionParams(
		params.ID,
		params.Status,
		params.SpentTxHash,
		params.SpentBlock,
		params.SpentAt,
		params.Recipient,
	))
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
