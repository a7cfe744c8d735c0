package dto

import "time"

// UploadResult is what the upload adapter answers with. The upload form
// writes it verbatim into a new record.
type UploadResult struct {
	URL         string    `json:"url"`
	PublicID    string    `json:"publicId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Size        int64     `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       string
	Description string
}

type TransformedImage struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}
