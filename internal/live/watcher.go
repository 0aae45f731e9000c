package live

import (
	"context"
	"sync"

	"github.com/internlink/internlink/internal/changefeed"
	"github.com/rs/zerolog"
)

// SnapshotFunc fetches the initial row set for a view
type SnapshotFunc[T any] func(ctx context.Context) ([]T, error)

// DecodeFunc extracts a typed row from a change-feed event. Returning
// false skips the event (delete events without a row payload still
// apply through the RowID).
type DecodeFunc[T any] func(changefeed.Event) (T, bool)

// Watcher keeps one table's view current: snapshot, then change-feed
// events folded in through a reconciler. When the snapshot fails the
// view falls back to a fixed demo dataset so the surface stays usable.
type Watcher[T any] struct {
	table    string
	feed     *changefeed.Feed
	snapshot SnapshotFunc[T]
	fallback []T
	decode   DecodeFunc[T]
	filter   changefeed.Filter
	logger   zerolog.Logger

	rec *Reconciler[T]

	mu        sync.Mutex
	sub       *changefeed.Subscription
	started   bool
	wg        sync.WaitGroup
	observers map[int64]func([]T)
	nextObsID int64
}

// WatcherConfig assembles a watcher
type WatcherConfig[T any] struct {
	Table    string
	Feed     *changefeed.Feed
	Snapshot SnapshotFunc[T]
	Fallback []T               // served when the snapshot fetch fails
	Decode   DecodeFunc[T]
	Filter   changefeed.Filter // optional, narrows the subscription
	RowID    func(T) int64
	Logger   zerolog.Logger
}

// NewWatcher creates a stopped watcher
func NewWatcher[T any](cfg WatcherConfig[T]) *Watcher[T] {
	return &Watcher[T]{
		table:     cfg.Table,
		feed:      cfg.Feed,
		snapshot:  cfg.Snapshot,
		fallback:  cfg.Fallback,
		decode:    cfg.Decode,
		filter:    cfg.Filter,
		logger:    cfg.Logger,
		rec:       NewReconciler(cfg.RowID),
		observers: make(map[int64]func([]T)),
	}
}

// Start seeds the view and begins folding in change-feed events
func (w *Watcher[T]) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	rows, err := w.snapshot(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Str("table", w.table).
			Msg("Snapshot fetch failed, serving demo data")
		rows = w.fallback
	}
	w.rec.Seed(rows)
	w.publish()

	w.mu.Lock()
	w.sub = w.feed.Subscribe(w.table, w.filter)
	sub := w.sub
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-sub.Done():
				return
			case event := <-sub.Events():
				w.applyEvent(event)
			}
		}
	}()
}

func (w *Watcher[T]) applyEvent(event changefeed.Event) {
	var row T
	if event.Action != changefeed.ActionDelete {
		decoded, ok := w.decode(event)
		if !ok {
			w.logger.Warn().Str("table", w.table).Int64("rowId", event.RowID).
				Msg("Change feed event carried an unexpected row type")
			return
		}
		row = decoded
	}
	w.rec.Apply(event.Action, event.RowID, row)
	w.publish()
}

func (w *Watcher[T]) publish() {
	rows := w.rec.Rows()

	w.mu.Lock()
	observers := make([]func([]T), 0, len(w.observers))
	for _, obs := range w.observers {
		observers = append(observers, obs)
	}
	w.mu.Unlock()

	for _, obs := range observers {
		obs(rows)
	}
}

// Stop cancels the subscription and waits for the apply goroutine
func (w *Watcher[T]) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	sub := w.sub
	w.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	w.wg.Wait()
}

// Rows returns the current view
func (w *Watcher[T]) Rows() []T {
	return w.rec.Rows()
}

// OnChange registers an observer for view updates and returns its
// deregistration function
func (w *Watcher[T]) OnChange(fn func([]T)) func() {
	w.mu.Lock()
	w.nextObsID++
	id := w.nextObsID
	w.observers[id] = fn
	w.mu.Unlock()

	fn(w.rec.Rows())

	return func() {
		w.mu.Lock()
		delete(w.observers, id)
		w.mu.Unlock()
	}
}
