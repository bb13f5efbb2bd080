package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"minderd/internal/model"
)

func TestEngineStressConcurrentSchedule(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+10) * time.Millisecond
				ev := ReminderEvent{
					ID:        fmt.Sprintf("w%d-%d", w, i),
					TaskID:    fmt.Sprintf("task-%d", i),
					Kind:      model.ReminderKindStart,
					TriggerAt: now.Add(delay),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	var received int64
	for atomic.LoadInt64(&received) < int64(total) {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case <-engine.C():
			atomic.AddInt64(&received, 1)
		}
	}

	if got := int(received); got != total {
		t.Fatalf("unexpected received count: got=%d want=%d", got, total)
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}

func TestEngineStressConcurrentReplace(t *testing.T) {
	engine := NewEngine(64)
	engine.Start()
	defer engine.Stop()

	far := time.Now().UTC().Add(time.Hour)
	var wg sync.WaitGroup
	const workers = 8
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				batch := []ReminderEvent{
					{ID: fmt.Sprintf("r%d-%d-a", w, i), TriggerAt: far},
					{ID: fmt.Sprintf("r%d-%d-b", w, i), TriggerAt: far},
				}
				if err := engine.Replace(batch); err != nil {
					t.Errorf("replace failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// Whatever interleaving won, exactly one batch of two remains armed.
	if got := engine.Armed(); got != 2 {
		t.Fatalf("unexpected armed count after replace storm: %d", got)
	}
}
