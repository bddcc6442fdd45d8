package datagateway

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/entity"
)

type AuctionDataGateway interface {
	AuctionReaderDataGateway
	AuctionWriterDataGateway

	// BeginAuctionTx returns a new AuctionDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginAuctionTx(ctx context.Context) (AuctionDataGatewayWithTx, error)
}

type AuctionDataGatewayWithTx interface {
	AuctionDataGateway
	Tx
}

type AuctionReaderDataGateway interface {
	// GetAuctionByID returns errs.NotFound if the auction does not exist.
	GetAuctionByID(ctx context.Context, id int64) (*entity.Auction, error)
	// GetAuctions returns auctions ordered by creation time, newest first. An empty status list matches every auction.
	GetAuctions(ctx context.Context, statuses ...entity.Status) ([]*entity.Auction, error)
	GetAuctionsByUTXO(ctx context.Context, utxo wire.OutPoint, statuses ...entity.Status) ([]*entity.Auction, error)
	// GetAuctionsMissingSpendDetails returns sold or closed auctions with a spending transaction but no spent block, time or recipient.
	GetAuctionsMissingSpendDetails(ctx context.Context) ([]*entity.Auction, error)

	// GetPriceRungs returns the ladder ordered by block number.
	GetPriceRungs(ctx context.Context, auctionID int64) ([]*entity.PriceRung, error)
	// GetPriceRung returns errs.NotFound if the auction has no rung at blockNumber.
	GetPriceRung(ctx context.Context, auctionID int64, blockNumber int64) (*entity.PriceRung, error)
}

type AuctionWriterDataGateway interface {
	// CreateAuction inserts the auction and fills its ID and CreatedAt.
	CreateAuction(ctx context.Context, auction *entity.Auction) error
	CreatePriceRungs(ctx context.Context, rungs []*entity.PriceRung) error
	// UpdateAuction sets every non-nil field of params. Nil fields keep their stored value.
	UpdateAuction(ctx context.Context, params UpdateAuctionParams) error
}

type UpdateAuctionParams struct {
	ID          int64
	Status      *entity.Status
	SpentTxHash *chainhash.Hash
	SpentBlock  *int64
	SpentAt     *time.Time
	Recipient   *string
}
