package live

import (
	"testing"

	"github.com/internlink/internlink/internal/changefeed"
	"github.com/stretchr/testify/assert"
)

type testRow struct {
	ID    int64
	Title string
}

func newTestReconciler() *Reconciler[testRow] {
	return NewReconciler(func(r testRow) int64 { return r.ID })
}

func titles(rows []testRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

func TestReconcilerInsertPrepends(t *testing.T) {
	rec := newTestReconciler()
	rec.Seed([]testRow{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}})

	rec.Apply(changefeed.ActionInsert, 3, testRow{ID: 3, Title: "third"})

	assert.Equal(t, []string{"third", "first", "second"}, titles(rec.Rows()))
}

func TestReconcilerUpdateReplacesInPlace(t *testing.T) {
	rec := newTestReconciler()
	rec.Seed([]testRow{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}})

	rec.Apply(changefeed.ActionUpdate, 2, testRow{ID: 2, Title: "second v2"})

	assert.Equal(t, []string{"first", "second v2"}, titles(rec.Rows()))
}

func TestReconcilerDeleteRemoves(t *testing.T) {
	rec := newTestReconciler()
	rec.Seed([]testRow{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}})

	rec.Apply(changefeed.ActionDelete, 1, testRow{})

	assert.Equal(t, []string{"second"}, titles(rec.Rows()))

	// Deleting an absent id changes nothing
	rec.Apply(changefeed.ActionDelete, 99, testRow{})
	assert.Equal(t, []string{"second"}, titles(rec.Rows()))
}

func TestReconcilerIdempotentByID(t *testing.T) {
	rec := newTestReconciler()

	// Replayed inserts for the same id collapse to one entry holding the
	// last seen version
	rec.Apply(changefeed.ActionInsert, 5, testRow{ID: 5, Title: "v1"})
	rec.Apply(changefeed.ActionInsert, 5, testRow{ID: 5, Title: "v2"})
	rec.Apply(changefeed.ActionUpdate, 5, testRow{ID: 5, Title: "v3"})

	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, []string{"v3"}, titles(rec.Rows()))
}

func TestReconcilerUpdateForUnknownIDPrepends(t *testing.T) {
	rec := newTestReconciler()
	rec.Seed([]testRow{{ID: 1, Title: "first"}})

	// An update arriving before its insert still lands in the view
	rec.Apply(changefeed.ActionUpdate, 2, testRow{ID: 2, Title: "late"})

	assert.Equal(t, []string{"late", "first"}, titles(rec.Rows()))
}

func TestReconcilerFullSequence(t *testing.T) {
	rec := newTestReconciler()
	rec.Seed([]testRow{{ID: 10, Title: "a"}, {ID: 20, Title: "b"}})

	rec.Apply(changefeed.ActionInsert, 30, testRow{ID: 30, Title: "c"})
	rec.Apply(changefeed.ActionUpdate, 10, testRow{ID: 10, Title: "a2"})
	rec.Apply(changefeed.ActionDelete, 20, testRow{})
	rec.Apply(changefeed.ActionInsert, 40, testRow{ID: 40, Title: "d"})

	assert.Equal(t, []string{"d", "c", "a2"}, titles(rec.Rows()))
}
