package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary 	List records
// @Description Full images collection ordered by uploadedAt, newest first
// @Tags 		records
// @Produce 	json
// @Success 	200 {object} response.Records
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/records [get]
func (r *V1) listRecords(ctx *fiber.Ctx) error {
	records, err := r.rec.List(ctx.UserContext())
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listRecords")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.Records{Records: records})
}

// @Summary 	Create record
// @Description Stores an upload adapter response verbatim; the store assigns the id
// @Tags 		records
// @Accept 		json
// @Produce 	json
// @Param		request body dto.UploadResult true "Upload result"
// @Success 	201 {object} entity.ImageRecord
// @Failure 	400 {object} response.Error "Missing url or publicId"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/records [post]
func (r *V1) createRecord(ctx *fiber.Ctx) error {
	var req dto.UploadResult

	err := ctx.BodyParser(&req)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.PublicID) == "" {
		return errorResponse(ctx, http.StatusBadRequest, "url and publicId are required")
	}

	record, err := r.rec.Create(ctx.UserContext(), req)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - createRecord")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusCreated).JSON(record)
}

// @Summary 	Delete record
// @Description Removes one record document. The stored image is not touched.
// @Tags 		records
// @Param		id 	path	 string true "Record ID(uuid)"
// @Success		204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Record not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/records/{id} [delete]
func (r *V1) deleteRecord(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.rec.Delete(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "record not found")
		}
		r.logger.Error(err, "restapi - v1 - deleteRecord")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Delete records in one batch
// @Description Removes all listed record documents atomically
// @Tags 		records
// @Accept 		json
// @Param		request body request.BatchDelete true "Record IDs"
// @Success		204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid IDs"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/records/batch-delete [post]
func (r *V1) deleteRecords(ctx *fiber.Ctx) error {
	var req request.BatchDelete

	err := ctx.BodyParser(&req)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid ids")
	}

	if len(req.IDs) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "ids are required")
	}

	err = r.rec.DeleteBatch(ctx.UserContext(), req.IDs)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - deleteRecords")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
