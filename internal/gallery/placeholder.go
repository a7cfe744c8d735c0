package gallery

import (
	"fmt"
	"html"
	"net/url"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

const placeholderSVG = `<svg xmlns='http://www.w3.org/2000/svg' width='300' height='200'>` +
	`<rect width='300' height='200' fill='#F9FAFB'/>` +
	`<text x='150' y='90' text-anchor='middle' fill='#6B7280' font-size='14'>Image failed to load</text>` +
	`<text x='150' y='110' text-anchor='middle' fill='#9CA3AF' font-size='12'>%s</text>` +
	`</svg>`

// MarkBroken records that the image of id failed to load.
func (e *Engine) MarkBroken(id uuid.UUID) {
	e.mu.Lock()
	_, had := e.broken[id]
	e.broken[id] = struct{}{}
	e.mu.Unlock()

	if !had {
		e.notify()
	}
}

func (e *Engine) Broken(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.broken[id]

	return ok
}

// ImageSource is the record URL, or an inline placeholder carrying the title
// once the image has been marked broken.
func (e *Engine) ImageSource(rec entity.ImageRecord) string {
	if !e.Broken(rec.ID) {
		return rec.URL
	}

	return Placeholder(rec.Title)
}

func Placeholder(title string) string {
	if title == "" {
		title = entity.DefaultTitle
	}

	svg := fmt.Sprintf(placeholderSVG, html.EscapeString(title))

	return "data:image/svg+xml," + url.PathEscape(svg)
}
