package uploadform

import (
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
)

const (
	MaxFileSize = 5 * 1024 * 1024

	DefaultTitleLen = 30
	MaxTitleLen     = 50
)

var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

func Validate(contentType string, size int64) error {
	if !slices.Contains(AllowedTypes, contentType) {
		return fmt.Errorf("Only images allowed (JPEG, PNG, GIF, WebP): %w", errs.ErrUnsupportedType)
	}
	if size > MaxFileSize {
		return fmt.Errorf("File too large (max 5MB): %w", errs.ErrFileTooLarge)
	}
	if size == 0 {
		return fmt.Errorf("File is empty: %w", errs.ErrEmptyFile)
	}

	return nil
}

// DetectContentType sniffs the data first and falls back to the extension.
func DetectContentType(name string, data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// DefaultTitle is the file name up to its first dot.
func DefaultTitle(name string) string {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}

	return truncate(base, DefaultTitleLen)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
