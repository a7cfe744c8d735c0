package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	ImageProcessor interface {
		Transform(ctx context.Context, contentType string, data []byte) (*dto.TransformedImage, error)
	}
)
