package postgres

import (
	"github.com/gaze-network/dutch-auction/internal/postgres"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.AuctionDataGatewayWithTx = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}
