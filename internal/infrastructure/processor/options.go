package processor

type Option func(*ImageProcessor)

func MaxDimensions(width, height int) Option {
	return func(p *ImageProcessor) {
		p.maxWidth = width
		p.maxHeight = height
	}
}

func JPEGQuality(quality int) Option {
	return func(p *ImageProcessor) {
		p.jpegQuality = quality
	}
}
