package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
)

func (u *Usecase) GetAuctions(ctx context.Context, statuses ...entity.Status) ([]*entity.Auction, error) {
	auctions, err := u.auctionDg.GetAuctions(ctx, statuses...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auctions")
	}
	return auctions, nil
}

func (u *Usecase) GetAuctionByID(ctx context.Context, id int64) (*entity.Auction, error) {
	auction, err := u.auctionDg.GetAuctionByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auction by id")
	}
	return auction, nil
}
