package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/common/errs"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// publicStatus maps the kind wrapped by a PublicError to a response status. Unlisted kinds are 400.
var publicStatus = []struct {
	kind   errs.ErrorKind
	status int
}{
	{errs.NotFound, http.StatusNotFound},
	{errs.Conflict, http.StatusConflict},
	{errs.LedgerUnavailable, http.StatusServiceUnavailable},
	{errs.LedgerPending, http.StatusServiceUnavailable},
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			status := http.StatusBadRequest
			for _, m := range publicStatus {
				if errors.Is(err, m.kind) {
					status = m.status
					break
				}
			}
			return errors.WithStack(ctx.Status(status).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).JSON(map[string]any{
				"error": e.Message,
			}))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
			slogx.String("event", "api_unhandled_error"),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
