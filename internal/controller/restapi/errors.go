package restapi

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/Photo-Gallery/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler answers every unhandled error with an {"error": ...} body.
// A body over the server limit can only be an oversized upload and gets the
// same 400 the upload handler returns for files over 5MB.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
		metrics.Uploads.WithLabelValues(metrics.ResultRejected).Inc()

		return ctx.Status(http.StatusBadRequest).JSON(response.Error{Error: validate.FileTooLargeMessage})
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}

	return ctx.Status(code).JSON(response.Error{Error: msg})
}
