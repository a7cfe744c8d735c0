package gallery

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine keeps a live derived view over the record set and runs single and
// bulk deletes against the image host and the record store.
//
// Every snapshot from the subscription replaces the base list wholesale.
// Network calls run outside the lock; state reads are always a copy.
type Engine struct {
	source RecordSource
	store  RecordStore
	host   ImageHost
	prompt Prompter
	logger logger.Interface

	lang      language.Tag
	collator  *collate.Collator
	listeners []func()

	mu sync.Mutex

	base    []entity.ImageRecord
	loading bool
	err     error

	search   string
	sortKey  entity.SortKey
	viewMode entity.ViewMode

	selected map[uuid.UUID]struct{}
	broken   map[uuid.UUID]struct{}
	deleting map[uuid.UUID]struct{}
	bulk     bool
	modal    *modalState

	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

func New(source RecordSource, store RecordStore, host ImageHost, prompt Prompter, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		store:    store,
		host:     host,
		prompt:   prompt,
		logger:   logger.Nop(),
		lang:     language.English,
		sortKey:  entity.SortNewest,
		viewMode: entity.ViewGrid,
		selected: make(map[uuid.UUID]struct{}),
		broken:   make(map[uuid.UUID]struct{}),
		deleting: make(map[uuid.UUID]struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.collator = collate.New(e.lang, collate.IgnoreCase)

	return e
}

// Activate opens the subscription and starts applying snapshots until
// Deactivate is called or the subscription fails. After a failure the engine
// may be activated again without calling Deactivate.
func (e *Engine) Activate(ctx context.Context) error {
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()

		return fmt.Errorf("Engine - Activate: already active")
	}
	e.active = true
	e.loading = true
	e.err = nil
	e.mu.Unlock()

	e.notify()

	subCtx, cancel := context.WithCancel(ctx)

	sub, err := e.source.Subscribe(subCtx)
	if err != nil {
		cancel()
		err = fmt.Errorf("Engine - Activate - e.source.Subscribe: %w", err)
		e.fail(err, nil)

		return err
	}

	done := make(chan struct{})

	e.mu.Lock()
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	go e.run(subCtx, sub, done)

	return nil
}

func (e *Engine) run(ctx context.Context, sub Subscription, done chan struct{}) {
	defer close(done)
	defer sub.Close()

	for {
		records, err := sub.Next(ctx)
		if err != nil {
			// отписка штатная, ошибкой не считаем
			if ctx.Err() == nil {
				e.fail(fmt.Errorf("Engine - run - sub.Next: %w", err), done)
			}

			return
		}

		e.applySnapshot(records)
	}
}

// Deactivate releases the subscription. No snapshot is applied after it
// returns.
func (e *Engine) Deactivate() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.active = false
	e.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Done is closed when the subscription ends for any reason.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.done == nil {
		closed := make(chan struct{})
		close(closed)

		return closed
	}

	return e.done
}

func (e *Engine) applySnapshot(records []entity.ImageRecord) {
	e.mu.Lock()
	e.replaceBase(slices.Clone(records))
	e.loading = false
	e.err = nil
	e.mu.Unlock()

	e.notify()
}

// fail drops to an empty non-loading view and ends the activation that owns
// done, so the engine can be activated again. Nothing is retried.
func (e *Engine) fail(err error, done chan struct{}) {
	e.logger.Error(err, "Engine - subscription")

	var cancel context.CancelFunc

	e.mu.Lock()
	e.replaceBase(nil)
	e.loading = false
	e.err = err
	if e.done == done {
		cancel = e.cancel
		e.cancel, e.done = nil, nil
		e.active = false
	}
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	e.notify()
}

// replaceBase must be called with e.mu held. A new base list invalidates the
// selection; the modal is closed only when its record is gone.
func (e *Engine) replaceBase(records []entity.ImageRecord) {
	e.base = records
	clear(e.selected)

	present := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		present[r.ID] = struct{}{}
	}

	for id := range e.broken {
		if _, ok := present[id]; !ok {
			delete(e.broken, id)
		}
	}

	if e.modal != nil {
		if _, ok := present[e.modal.record.ID]; !ok {
			e.modal = nil
		}
	}
}

func (e *Engine) notify() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.loading
}

// Err is the error that ended the subscription, if any.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.err
}

// Records returns the base list as last received.
func (e *Engine) Records() []entity.ImageRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.base)
}

func (e *Engine) record(id uuid.UUID) (entity.ImageRecord, bool) {
	for _, r := range e.base {
		if r.ID == id {
			return r, true
		}
	}

	return entity.ImageRecord{}, false
}
