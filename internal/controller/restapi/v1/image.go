package v1

import (
	"net/http"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Delete image from the image host
// @Description Destroys the stored image by its public id. The record document is not touched.
// @Tags 		images
// @Accept 		json
// @Produce 	json
// @Param		request body request.DestroyImage true "Public ID"
// @Success		200 {object} response.Message
// @Failure 	400 {object} response.Error "Public ID required"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/image [delete]
func (r *V1) destroyImage(ctx *fiber.Ctx) error {
	var req request.DestroyImage

	err := ctx.BodyParser(&req)
	if err != nil || strings.TrimSpace(req.PublicID) == "" {
		metrics.RemoteDeletes.WithLabelValues(metrics.ResultRejected).Inc()

		return errorResponse(ctx, http.StatusBadRequest, "Public ID required")
	}

	err = r.img.Destroy(ctx.UserContext(), req.PublicID)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - destroyImage")
		metrics.RemoteDeletes.WithLabelValues(metrics.ResultFailed).Inc()

		return errorResponse(ctx, http.StatusInternalServerError, "Failed to delete from storage")
	}

	metrics.RemoteDeletes.WithLabelValues(metrics.ResultOK).Inc()

	return ctx.Status(http.StatusOK).JSON(response.Message{Message: "Image deleted from storage"})
}
