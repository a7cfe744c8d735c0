package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/gallery"
	"github.com/dustin/go-humanize"
)

const _dateLayout = "2006-01-02 15:04"

// Render prints the derived view of e in its current view mode.
func Render(w io.Writer, e *gallery.Engine) {
	if e.Loading() {
		fmt.Fprintln(w, gray("Loading..."))

		return
	}

	if err := e.Err(); err != nil {
		fmt.Fprintln(w, red("Error fetching images: "+err.Error()))
	}

	view := e.View()

	fmt.Fprintln(w, bold("Photo Gallery")+"  "+gray(e.Summary()))

	if len(view) == 0 {
		if e.Search() != "" {
			fmt.Fprintln(w, gray("No photos found. Try adjusting your search terms."))
		} else {
			fmt.Fprintln(w, gray("No photos yet. Upload some photos to get started."))
		}

		return
	}

	if e.ViewMode() == entity.ViewList {
		renderList(w, e, view)

		return
	}

	renderGrid(w, e, view)
}

func renderGrid(w io.Writer, e *gallery.Engine, view []entity.ImageRecord) {
	for _, rec := range view {
		fmt.Fprintf(w, "\n%s %s\n", checkbox(e.IsSelected(rec.ID)), bold(rec.Title))
		if rec.Description != "" {
			fmt.Fprintf(w, "    %s\n", rec.Description)
		}
		fmt.Fprintf(w, "    %s  %s  %s\n",
			FormatSize(rec.Size), rec.UploadedAt.Local().Format(_dateLayout), gray(rec.ID.String()))
		fmt.Fprintf(w, "    %s\n", cyan(e.ImageSource(rec)))
	}
}

func renderList(w io.Writer, e *gallery.Engine, view []entity.ImageRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := checkbox(e.SelectionState() == gallery.SelectionAll)
	fmt.Fprintf(tw, "%s\tID\tTITLE\tSIZE\tDIMENSIONS\tUPLOADED\n", header)

	for _, rec := range view {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%d\t%s\n",
			checkbox(e.IsSelected(rec.ID)),
			rec.ID.String()[:8],
			truncate(rec.Title, 40),
			FormatSize(rec.Size),
			rec.Width, rec.Height,
			rec.UploadedAt.Local().Format(_dateLayout),
		)
	}

	_ = tw.Flush()
}

// RenderModal prints the record open in the modal with its position.
func RenderModal(w io.Writer, e *gallery.Engine) {
	rec, idx, ok := e.Modal()
	if !ok {
		return
	}

	total := len(e.View())

	fmt.Fprintf(w, "\n%s  %s\n", bold(rec.Title), gray(fmt.Sprintf("%d / %d", idx+1, total)))
	if rec.Description != "" {
		fmt.Fprintln(w, rec.Description)
	}
	fmt.Fprintf(w, "%s • %dx%d • %s\n",
		FormatSize(rec.Size), rec.Width, rec.Height, humanize.Time(rec.UploadedAt))
	fmt.Fprintln(w, cyan(e.ImageSource(rec)))

	if e.Deleting(rec.ID) {
		fmt.Fprintln(w, yellow("Deleting..."))
	}
}

// FormatSize uses 1024-based units.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	return humanize.IBytes(uint64(bytes))
}

func checkbox(checked bool) string {
	if checked {
		return green("[x]")
	}

	return "[ ]"
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
