package usecase

import (
	"context"
)

type Health struct {
	NodeError    error
	CurrentBlock *int64
}

// GetHealth probes the bitcoin node. An unreachable node is reported, not returned as an error.
func (u *Usecase) GetHealth(ctx context.Context) Health {
	height, err := u.btcClient.CurrentHeight(ctx)
	if err != nil {
		return Health{NodeError: err}
	}
	return Health{CurrentBlock: &height}
}
