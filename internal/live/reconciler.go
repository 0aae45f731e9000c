// Package live keeps client-facing views of marketplace tables current:
// a snapshot fetch seeds the view, then change-feed events reconcile it
// row by row without polling.
package live

import (
	"sync"

	"github.com/internlink/internlink/internal/changefeed"
)

// Reconciler maintains an ordered row list keyed by id. Applying events
// is idempotent: the list holds exactly one entry per id last seen in an
// insert or update, and none for a deleted id. New ids are prepended so
// the freshest rows lead the view.
type Reconciler[T any] struct {
	mu   sync.Mutex
	id   func(T) int64
	rows []entry[T]
}

type entry[T any] struct {
	id  int64
	row T
}

// NewReconciler creates an empty reconciler using id to key rows
func NewReconciler[T any](id func(T) int64) *Reconciler[T] {
	return &Reconciler[T]{id: id}
}

// Seed replaces the whole list with a snapshot, preserving its order
func (r *Reconciler[T]) Seed(rows []T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = make([]entry[T], 0, len(rows))
	for _, row := range rows {
		r.rows = append(r.rows, entry[T]{id: r.id(row), row: row})
	}
}

// Apply folds one change-feed event into the list
func (r *Reconciler[T]) Apply(action changefeed.Action, rowID int64, row T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.rows {
		if r.rows[i].id == rowID {
			idx = i
			break
		}
	}

	switch action {
	case changefeed.ActionDelete:
		if idx >= 0 {
			r.rows = append(r.rows[:idx], r.rows[idx+1:]...)
		}
	case changefeed.ActionInsert, changefeed.ActionUpdate:
		if idx >= 0 {
			r.rows[idx].row = row
			return
		}
		r.rows = append([]entry[T]{{id: rowID, row: row}}, r.rows...)
	}
}

// Rows returns a copy of the current list
func (r *Reconciler[T]) Rows() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]T, 0, len(r.rows))
	for _, e := range r.rows {
		rows = append(rows, e.row)
	}
	return rows
}

// Len returns the current row count
func (r *Reconciler[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
