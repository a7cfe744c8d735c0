package validate

import "github.com/andreyxaxa/Photo-Gallery/internal/usecase/imagehost"

const (
	MaxFileSize = imagehost.MaxUploadSize

	ImageField       = "image"
	TitleField       = "title"
	DescriptionField = "description"

	MaxTitleLen       = 200
	MaxDescriptionLen = 2000

	FileTooLargeMessage = "File size too large (max 5MB)"
)
