package httphandler

import (
	"crypto/subtle"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

const apiKeyHeader = "X-API-Key"

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/api")

	r.Post("/auctions", h.requireAPIKey(), h.CreateAuction)
	r.Get("/auctions", h.GetAuctions)
	r.Get("/auctions/:id", h.GetAuction)
	r.Get("/auctions/:id/current-psbt", h.GetCurrentPSBT)
	r.Get("/health", h.GetHealth)
	return nil
}

func (h *HttpHandler) requireAPIKey() fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup: "header:" + apiKeyHeader,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			message := "Invalid API key"
			if c.Get(apiKeyHeader) == "" {
				message = "API key required"
			}
			return errors.WithStack(c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": message}))
		},
	})
}
