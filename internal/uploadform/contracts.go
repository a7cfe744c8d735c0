package uploadform

import (
	"context"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
)

type (
	// Uploader is the upload adapter.
	Uploader interface {
		Upload(ctx context.Context, file dto.UploadFile) (*dto.UploadResult, error)
	}

	// RecordCreator writes an upload result into the record store.
	RecordCreator interface {
		CreateRecord(ctx context.Context, upload dto.UploadResult) (*entity.ImageRecord, error)
	}
)
