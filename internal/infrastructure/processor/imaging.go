package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/disintegration/imaging"

	// registers the webp decoder for imaging.Decode
	_ "golang.org/x/image/webp"
)

const (
	_defaultMaxWidth    = 800
	_defaultMaxHeight   = 600
	_defaultJPEGQuality = 80
)

// ImageProcessor applies the fixed upload pipeline: fit inside the bounding
// box without upscaling, then re-encode in an automatically chosen format.
type ImageProcessor struct {
	maxWidth    int
	maxHeight   int
	jpegQuality int
}

func New(opts ...Option) *ImageProcessor {
	p := &ImageProcessor{
		maxWidth:    _defaultMaxWidth,
		maxHeight:   _defaultMaxHeight,
		jpegQuality: _defaultJPEGQuality,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *ImageProcessor) Transform(ctx context.Context, contentType string, data []byte) (*dto.TransformedImage, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Transform - decodeImage: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ImageProcessor - Transform: %w", err)
	}

	// imaging.Fit returns a copy untouched when the source already fits
	fitted := imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

	format, mime, ext := outputFormat(contentType)

	res, err := p.encodeImage(fitted, format)
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Transform - encodeImage: %w", err)
	}

	bounds := fitted.Bounds()

	return &dto.TransformedImage{
		Data:        res,
		ContentType: mime,
		Ext:         ext,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// outputFormat keeps lossless sources lossless and sends everything else
// through JPEG.
func outputFormat(contentType string) (imaging.Format, string, string) {
	switch contentType {
	case "image/png", "image/gif":
		return imaging.PNG, "image/png", ".png"
	default:
		return imaging.JPEG, "image/jpeg", ".jpg"
	}
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - decodeImage - imaging.Decode: %w", err)
	}

	return img, nil
}

func (p *ImageProcessor) encodeImage(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(p.jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - encodeImage - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
