package request

import "github.com/google/uuid"

type DestroyImage struct {
	PublicID string `json:"publicId"`
}

type BatchDelete struct {
	IDs []uuid.UUID `json:"ids"`
}
