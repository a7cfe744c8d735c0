package v1

import (
	"github.com/andreyxaxa/Photo-Gallery/internal/usecase"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
)

type V1 struct {
	img    usecase.ImageHostUseCase
	rec    usecase.RecordUseCase
	feed   usecase.ChangeFeed
	logger logger.Interface
}
