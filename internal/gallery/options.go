package gallery

import (
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"golang.org/x/text/language"
)

type Option func(*Engine)

func Logger(l logger.Interface) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// Language sets the locale used to compare titles when sorting by name.
func Language(tag language.Tag) Option {
	return func(e *Engine) {
		e.lang = tag
	}
}

// OnChange registers a listener called after every state change. Listeners
// run outside the engine lock and may read state.
func OnChange(fn func()) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, fn)
	}
}

func Sort(key entity.SortKey) Option {
	return func(e *Engine) {
		e.sortKey = key
	}
}

func View(mode entity.ViewMode) Option {
	return func(e *Engine) {
		e.viewMode = mode
	}
}

func Search(term string) Option {
	return func(e *Engine) {
		e.search = term
	}
}
