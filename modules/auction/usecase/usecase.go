package usecase

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/dutch-auction/modules/auction/datagateway"
	"github.com/gaze-network/dutch-auction/modules/auction/internal/validator"
	"github.com/gaze-network/dutch-auction/pkg/btcclient"
)

type Validator interface {
	Validate(ctx context.Context, submission validator.Submission) (*validator.Admission, error)
}

// Watcher is told about the UTXO of every admitted auction.
type Watcher interface {
	Watch(outPoint wire.OutPoint)
}

type Usecase struct {
	auctionDg datagateway.AuctionDataGateway
	btcClient btcclient.Contract
	validator Validator
	watcher   Watcher

	// admissions check and insert as one step
	admitMu sync.Mutex
}

func New(auctionDg datagateway.AuctionDataGateway, btcClient btcclient.Contract, validator Validator, watcher Watcher) *Usecase {
	return &Usecase{
		auctionDg: auctionDg,
		btcClient: btcClient,
		validator: validator,
		watcher:   watcher,
	}
}
