package live

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/changefeed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(feed *changefeed.Feed, snapshot SnapshotFunc[testRow], fallback []testRow) *Watcher[testRow] {
	return NewWatcher(WatcherConfig[testRow]{
		Table:    "job_listings",
		Feed:     feed,
		Snapshot: snapshot,
		Fallback: fallback,
		Decode: func(e changefeed.Event) (testRow, bool) {
			row, ok := e.Row.(testRow)
			return row, ok
		},
		RowID:  func(r testRow) int64 { return r.ID },
		Logger: zerolog.Nop(),
	})
}

func waitForRows(t *testing.T, w *Watcher[testRow], size int) []testRow {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rows := w.Rows(); len(rows) == size {
			return rows
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("view never reached %d rows (have %d)", size, len(w.Rows()))
	return nil
}

func TestWatcherSeedsFromSnapshot(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	snapshot := func(context.Context) ([]testRow, error) {
		return []testRow{{ID: 1, Title: "listed"}}, nil
	}

	w := newTestWatcher(feed, snapshot, nil)
	w.Start(context.Background())
	defer w.Stop()

	rows := w.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "listed", rows[0].Title)
}

func TestWatcherFallsBackToDemoData(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	snapshot := func(context.Context) ([]testRow, error) {
		return nil, errors.New("backend unavailable")
	}
	fallback := []testRow{{ID: 100, Title: "demo listing"}}

	w := newTestWatcher(feed, snapshot, fallback)
	w.Start(context.Background())
	defer w.Stop()

	rows := w.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "demo listing", rows[0].Title)
}

func TestWatcherFoldsInFeedEvents(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	snapshot := func(context.Context) ([]testRow, error) {
		return []testRow{{ID: 1, Title: "first"}}, nil
	}

	w := newTestWatcher(feed, snapshot, nil)
	w.Start(context.Background())
	defer w.Stop()

	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "job_listings",
		RowID:  2,
		Row:    testRow{ID: 2, Title: "second"},
	})

	rows := waitForRows(t, w, 2)
	assert.Equal(t, "second", rows[0].Title)

	feed.Publish(changefeed.Event{
		Action: changefeed.ActionDelete,
		Table:  "job_listings",
		RowID:  1,
	})

	rows = waitForRows(t, w, 1)
	assert.Equal(t, "second", rows[0].Title)
}

func TestWatcherStopHaltsDelivery(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	snapshot := func(context.Context) ([]testRow, error) {
		return nil, nil
	}

	w := newTestWatcher(feed, snapshot, nil)
	w.Start(context.Background())
	w.Stop()

	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "job_listings",
		RowID:  1,
		Row:    testRow{ID: 1, Title: "after stop"},
	})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, w.Rows())
}
