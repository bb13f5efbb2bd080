package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"minderd/internal/model"
	"minderd/internal/storage"
)

type fakeTransport struct {
	sent  []model.PushPayload
	fail  map[string]error
	calls int
}

func (f *fakeTransport) Send(_ context.Context, _ model.Subscription, payload model.PushPayload) error {
	f.calls++
	if err, ok := f.fail[payload.Tag]; ok {
		return err
	}
	f.sent = append(f.sent, payload)
	return nil
}

func seedStore(t *testing.T, store storage.KV, sub *model.Subscription, schedule []model.NotificationRecord) {
	t.Helper()
	ctx := context.Background()
	if sub != nil {
		raw, err := json.Marshal(sub)
		if err != nil {
			t.Fatalf("marshal subscription: %v", err)
		}
		if err := store.Set(ctx, storage.KeySubscription, raw); err != nil {
			t.Fatalf("seed subscription: %v", err)
		}
	}
	if schedule != nil {
		raw, err := json.Marshal(schedule)
		if err != nil {
			t.Fatalf("marshal schedule: %v", err)
		}
		if err := store.Set(ctx, storage.KeySchedule, raw); err != nil {
			t.Fatalf("seed schedule: %v", err)
		}
	}
}

func testSubscription() *model.Subscription {
	return &model.Subscription{
		Endpoint: "https://push.example.com/send/abc",
		Keys:     model.SubscriptionKeys{P256dh: "p256", Auth: "auth"},
	}
}

func dueRecord(id string, at time.Time) model.NotificationRecord {
	return model.NotificationRecord{
		ID:    id,
		Time:  at.UTC().Format(time.RFC3339),
		Title: "Task " + id,
		Body:  "It is time to start!",
		Tag:   "task-" + id,
	}
}

func TestDispatcherSendsDueRecordsOnce(t *testing.T) {
	store := storage.NewMemoryKV()
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	seedStore(t, store, testSubscription(), []model.NotificationRecord{
		dueRecord("t1-start", now.Add(-time.Minute)),
		dueRecord("t2-start", now.Add(time.Hour)),
	})

	transport := &fakeTransport{}
	d := NewDispatcher(store, transport, WithClock(func() time.Time { return now }))

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Sent != 1 || result.SubscriptionGone {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(transport.sent) != 1 || transport.sent[0].Tag != "task-t1-start" {
		t.Fatalf("unexpected deliveries: %+v", transport.sent)
	}

	// A second pass before the schedule changes delivers nothing new.
	result, err = d.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Sent != 0 {
		t.Fatalf("second run re-sent records: %+v", result)
	}
	if len(transport.sent) != 1 {
		t.Fatalf("unexpected deliveries after second run: %+v", transport.sent)
	}
}

func TestDispatcherNoopWithoutSubscriptionOrSchedule(t *testing.T) {
	store := storage.NewMemoryKV()
	transport := &fakeTransport{}
	d := NewDispatcher(store, transport)

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run without state: %v", err)
	}
	if result.Sent != 0 || transport.calls != 0 {
		t.Fatalf("dispatcher acted without state: %+v calls=%d", result, transport.calls)
	}

	seedStore(t, store, testSubscription(), nil)
	result, err = d.Run(context.Background())
	if err != nil {
		t.Fatalf("run without schedule: %v", err)
	}
	if result.Sent != 0 || transport.calls != 0 {
		t.Fatalf("dispatcher acted without schedule: %+v calls=%d", result, transport.calls)
	}
}

func TestDispatcherRetiresGoneSubscription(t *testing.T) {
	store := storage.NewMemoryKV()
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	seedStore(t, store, testSubscription(), []model.NotificationRecord{
		dueRecord("t1-start", now.Add(-3*time.Minute)),
		dueRecord("t2-start", now.Add(-2*time.Minute)),
		dueRecord("t3-start", now.Add(-time.Minute)),
	})

	transport := &fakeTransport{fail: map[string]error{
		"task-t2-start": fmt.Errorf("status 410: %w", ErrSubscriptionGone),
	}}
	d := NewDispatcher(store, transport, WithClock(func() time.Time { return now }))

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Sent != 1 || !result.SubscriptionGone {
		t.Fatalf("unexpected result: %+v", result)
	}
	// The third record is never attempted once the endpoint is known dead.
	if transport.calls != 2 {
		t.Fatalf("unexpected transport calls: %d", transport.calls)
	}
	if _, err := store.Get(context.Background(), storage.KeySubscription); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("subscription not retired: %v", err)
	}

	// The partial sent set still persists so the first record stays deduped.
	raw, err := store.Get(context.Background(), storage.KeySent)
	if err != nil {
		t.Fatalf("load sent set: %v", err)
	}
	var sent []string
	if err := json.Unmarshal(raw, &sent); err != nil {
		t.Fatalf("decode sent set: %v", err)
	}
	if len(sent) != 1 || sent[0] != "t1-start" {
		t.Fatalf("unexpected sent set: %v", sent)
	}
}

func TestDispatcherKeepsGoingOnTransientFailure(t *testing.T) {
	store := storage.NewMemoryKV()
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	seedStore(t, store, testSubscription(), []model.NotificationRecord{
		dueRecord("t1-start", now.Add(-2*time.Minute)),
		dueRecord("t2-start", now.Add(-time.Minute)),
	})

	transport := &fakeTransport{fail: map[string]error{
		"task-t1-start": errors.New("status 502"),
	}}
	d := NewDispatcher(store, transport, WithClock(func() time.Time { return now }))

	result, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Sent != 1 || result.SubscriptionGone {
		t.Fatalf("unexpected result: %+v", result)
	}

	// The failed record stays unsent; a healthy retry delivers it.
	transport.fail = nil
	result, err = d.Run(context.Background())
	if err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if result.Sent != 1 {
		t.Fatalf("retry did not deliver the failed record: %+v", result)
	}
}

func TestDispatcherTraceStatuses(t *testing.T) {
	store := storage.NewMemoryKV()
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	schedule := []model.NotificationRecord{
		dueRecord("sent-one", now.Add(-time.Minute)),
		dueRecord("later", now.Add(time.Hour)),
		{ID: "broken", Time: "not-a-time"},
	}
	seedStore(t, store, testSubscription(), schedule)

	transport := &fakeTransport{}
	d := NewDispatcher(store, transport, WithClock(func() time.Time { return now }))

	result, entries, err := d.RunTrace(context.Background())
	if err != nil {
		t.Fatalf("run trace: %v", err)
	}
	if result.Sent != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 trace entries, got %d", len(entries))
	}

	byID := make(map[string]TraceEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	if byID["sent-one"].Status != StatusSent {
		t.Fatalf("unexpected status for sent-one: %+v", byID["sent-one"])
	}
	if byID["later"].Status != StatusNotDue {
		t.Fatalf("unexpected status for later: %+v", byID["later"])
	}
	if byID["broken"].Status != StatusSkipped || byID["broken"].Error == "" {
		t.Fatalf("unexpected status for broken: %+v", byID["broken"])
	}

	// Re-running reports the delivered record as already sent.
	_, entries, err = d.RunTrace(context.Background())
	if err != nil {
		t.Fatalf("second trace: %v", err)
	}
	for _, e := range entries {
		if e.ID == "sent-one" && e.Status != StatusAlreadySent {
			t.Fatalf("unexpected second-pass status: %+v", e)
		}
	}
}
