package response

import "github.com/andreyxaxa/Photo-Gallery/internal/entity"

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

type Records struct {
	Records []entity.ImageRecord `json:"records"`
}

const (
	StreamSnapshot = "snapshot"
	StreamError    = "error"
)

// StreamMessage is one frame of the realtime record stream. Every snapshot
// carries the full ordered collection.
type StreamMessage struct {
	Type    string               `json:"type"`
	Records []entity.ImageRecord `json:"records"`
	Error   string               `json:"error,omitempty"`
}
