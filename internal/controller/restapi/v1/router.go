package v1

import (
	"github.com/andreyxaxa/Photo-Gallery/internal/usecase"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func NewGalleryRoutes(
	apiV1Group fiber.Router,
	img usecase.ImageHostUseCase,
	rec usecase.RecordUseCase,
	feed usecase.ChangeFeed,
	l logger.Interface,
) {
	r := &V1{img: img, rec: rec, feed: feed, logger: l}

	{
		// Image host adapters
		apiV1Group.Post("/upload", r.uploadImage)
		apiV1Group.Delete("/image", r.destroyImage)

		// Record store
		apiV1Group.Get("/records", r.listRecords)
		apiV1Group.Post("/records", r.createRecord)
		apiV1Group.Post("/records/batch-delete", r.deleteRecords)
		apiV1Group.Delete("/records/:id", r.deleteRecord)
		apiV1Group.Get("/records/stream", r.upgradeStream, websocket.New(r.streamRecords))
	}
}
