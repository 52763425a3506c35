package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgmerge/internal/adapters/watcher"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, 0, rec.record)

		d.Add("package.extra.json")
		time.Sleep(50 * time.Millisecond)
		d.Add("package.base.json")
		d.Add("package.extra.json")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"package.base.json", "package.extra.json"}, calls[0])
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, 0, rec.record)

		d.Add("a.json")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("b.json")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"a.json"}, {"b.json"}}, rec.snapshot())
	})
}

func TestDebouncer_MaxWait(t *testing.T) {
	tests := []struct {
		name      string
		maxWait   time.Duration
		wantCalls int
	}{
		{name: "bounded", maxWait: 250 * time.Millisecond, wantCalls: 2},
		{name: "unbounded", maxWait: 0, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				rec := &recorder{}
				d := watcher.NewDebouncer(100*time.Millisecond, tt.maxWait, rec.record)

				for range 10 {
					d.Add("package.base.json")
					time.Sleep(40 * time.Millisecond)
				}
				time.Sleep(200 * time.Millisecond)
				synctest.Wait()

				calls := rec.snapshot()
				assert.Len(t, calls, tt.wantCalls)
				for _, call := range calls {
					assert.Equal(t, []string{"package.base.json"}, call)
				}
			})
		})
	}
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, 0, rec.record)

		d.Add("a.json")
		d.Stop()

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(0, 0, nil)
		assert.NotPanics(t, func() {
			d.Add("a.json")
			time.Sleep(time.Millisecond)
			synctest.Wait()
		})
	})
}
