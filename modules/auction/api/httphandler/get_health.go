package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getHealthResponse struct {
	Status       string `json:"status"`
	BitcoinRPC   string `json:"bitcoin_rpc"`
	CurrentBlock *int64 `json:"current_block"`
}

func (h *HttpHandler) GetHealth(ctx *fiber.Ctx) (err error) {
	health := h.usecase.GetHealth(ctx.UserContext())

	resp := getHealthResponse{
		Status:       "healthy",
		BitcoinRPC:   "connected",
		CurrentBlock: health.CurrentBlock,
	}
	if health.NodeError != nil {
		resp.BitcoinRPC = "error: " + health.NodeError.Error()
	}
	return errors.WithStack(ctx.JSON(resp))
}
