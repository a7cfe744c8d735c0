package imagehost

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/infrastructure"
	"github.com/andreyxaxa/Photo-Gallery/internal/repo"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	MaxUploadSize int64 = 5 * 1024 * 1024

	_defaultFolder = "gallery"
)

type ImageHostUseCase struct {
	objects   repo.ObjectRepo
	processor infrastructure.ImageProcessor
	folder    string
	now       func() time.Time

	logger logger.Interface
}

func New(objects repo.ObjectRepo, p infrastructure.ImageProcessor, folder string, l logger.Interface) *ImageHostUseCase {
	if folder == "" {
		folder = _defaultFolder
	}

	return &ImageHostUseCase{
		objects:   objects,
		processor: p,
		folder:    strings.Trim(folder, "/"),
		now:       time.Now,
		logger:    l,
	}
}

// Validate checks a raw upload the same way the HTTP adapter does. Size is
// measured on the decoded buffer, not the declared part size.
func Validate(contentType string, data []byte) error {
	if len(data) == 0 {
		return errs.ErrEmptyFile
	}
	if !strings.HasPrefix(contentType, "image/") {
		return errs.ErrUnsupportedType
	}
	if int64(len(data)) > MaxUploadSize {
		return errs.ErrFileTooLarge
	}

	return nil
}

func (uc *ImageHostUseCase) Upload(ctx context.Context, file dto.UploadFile) (*dto.UploadResult, error) {
	if err := Validate(file.ContentType, file.Data); err != nil {
		return nil, fmt.Errorf("ImageHostUseCase - Upload - Validate: %w", err)
	}

	// 1. fixed pipeline: bounding box, quality, format
	transformed, err := uc.processor.Transform(ctx, file.ContentType, file.Data)
	if err != nil {
		return nil, fmt.Errorf("ImageHostUseCase - Upload - uc.processor.Transform: %w", err)
	}

	// 2. store under a fresh public id
	publicID := fmt.Sprintf("%s/%s%s", uc.folder, uuid.New(), transformed.Ext)
	err = uc.objects.Put(ctx, publicID, transformed.Data, transformed.ContentType)
	if err != nil {
		return nil, fmt.Errorf("ImageHostUseCase - Upload - uc.objects.Put: %w", err)
	}

	title := strings.TrimSpace(file.Title)
	if title == "" {
		title = entity.DefaultTitle
	}

	uc.logger.Debug("uploaded %s (%d bytes, %dx%d)", publicID, len(transformed.Data), transformed.Width, transformed.Height)

	return &dto.UploadResult{
		URL:         uc.objects.PublicURL(publicID),
		PublicID:    publicID,
		Title:       title,
		Description: file.Description,
		UploadedAt:  uc.now().UTC(),
		Size:        int64(len(transformed.Data)),
		Width:       transformed.Width,
		Height:      transformed.Height,
	}, nil
}

func (uc *ImageHostUseCase) Destroy(ctx context.Context, publicID string) error {
	err := uc.objects.Delete(ctx, publicID)
	if err != nil {
		return fmt.Errorf("ImageHostUseCase - Destroy - uc.objects.Delete: %w", err)
	}

	return nil
}
