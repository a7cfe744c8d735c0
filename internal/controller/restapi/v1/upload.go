package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/metrics"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Upload image
// @Description Validates the file, runs the fixed transformation pipeline and stores the result on the image host
// @Tags 		images
// @Accept 		mpfd
// @Produce 	json
// @Param 		image 		formData file   true  "Image file"
// @Param 		title 		formData string false "Title (default Untitled)"
// @Param 		description formData string false "Description"
// @Success 	200 {object} dto.UploadResult
// @Failure 	400 {object} response.Error "No file, not an image, or larger than 5MB"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/upload [post]
func (r *V1) uploadImage(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile(validate.ImageField)
	if err != nil {
		metrics.Uploads.WithLabelValues(metrics.ResultRejected).Inc()

		return errorResponse(ctx, http.StatusBadRequest, "No file uploaded")
	}

	// 1. читаем весь буфер: лимит проверяется по фактическому размеру
	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage - file.Open")
		metrics.Uploads.WithLabelValues(metrics.ResultFailed).Inc()

		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error: cannot open file")
	}
	defer fileReader.Close()

	data, err := io.ReadAll(io.LimitReader(fileReader, validate.MaxFileSize+1))
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage - io.ReadAll")
		metrics.Uploads.WithLabelValues(metrics.ResultFailed).Inc()

		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error: cannot read file")
	}

	// 2. валидация
	contentType := file.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		metrics.Uploads.WithLabelValues(metrics.ResultRejected).Inc()

		return errorResponse(ctx, http.StatusBadRequest, "Only image files are allowed")
	}

	if int64(len(data)) > validate.MaxFileSize {
		metrics.Uploads.WithLabelValues(metrics.ResultRejected).Inc()

		return errorResponse(ctx, http.StatusBadRequest, validate.FileTooLargeMessage)
	}

	title := truncate(strings.TrimSpace(ctx.FormValue(validate.TitleField)), validate.MaxTitleLen)
	if title == "" {
		title = entity.DefaultTitle
	}

	// 3. загружаем
	res, err := r.img.Upload(ctx.UserContext(), dto.UploadFile{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        data,
		Title:       title,
		Description: truncate(ctx.FormValue(validate.DescriptionField), validate.MaxDescriptionLen),
	})
	if err != nil {
		if errors.Is(err, errs.ErrEmptyFile) {
			metrics.Uploads.WithLabelValues(metrics.ResultRejected).Inc()

			return errorResponse(ctx, http.StatusBadRequest, "File is empty")
		}
		r.logger.Error(err, "restapi - v1 - uploadImage")
		metrics.Uploads.WithLabelValues(metrics.ResultFailed).Inc()

		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error: upload to image host failed")
	}

	metrics.Uploads.WithLabelValues(metrics.ResultOK).Inc()

	return ctx.Status(http.StatusOK).JSON(res)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
