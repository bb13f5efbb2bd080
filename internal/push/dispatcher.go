package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"minderd/internal/model"
	"minderd/internal/storage"
)

// ErrSubscriptionGone marks a push endpoint the service reports as
// permanently invalid. The dispatcher retires the stored subscription when a
// send fails with it.
var ErrSubscriptionGone = errors.New("push: subscription gone")

// Transport delivers one payload to a push endpoint. Attempts are bounded by
// the transport's own timeout; the dispatcher never retries within an
// invocation.
type Transport interface {
	Send(ctx context.Context, sub model.Subscription, payload model.PushPayload) error
}

// Record delivery statuses reported by the diagnostic trace.
const (
	StatusSent        = "sent"
	StatusAlreadySent = "already-sent"
	StatusNotDue      = "not-due"
	StatusError       = "error"
	StatusSkipped     = "skipped"
)

// TraceEntry is the per-record outcome of one dispatcher invocation.
type TraceEntry struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Result summarizes one dispatcher invocation.
type Result struct {
	Sent             int
	SubscriptionGone bool
}

// Dispatcher is the relay-side delivery loop. Each invocation reads the
// stored subscription, schedule and sent set, sends due unsent records, and
// persists the grown sent set. Re-running before the next schedule write
// sends nothing new.
type Dispatcher struct {
	store     storage.KV
	transport Transport
	logger    *slog.Logger
	now       func() time.Time
}

type DispatcherOption func(*Dispatcher)

func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) { d.now = now }
}

func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

func NewDispatcher(store storage.KV, transport Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		transport: transport,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one delivery pass.
func (d *Dispatcher) Run(ctx context.Context) (Result, error) {
	result, _, err := d.run(ctx, false)
	return result, err
}

// RunTrace executes one delivery pass and reports per-record status.
func (d *Dispatcher) RunTrace(ctx context.Context) (Result, []TraceEntry, error) {
	return d.run(ctx, true)
}

func (d *Dispatcher) run(ctx context.Context, trace bool) (Result, []TraceEntry, error) {
	var result Result

	sub, ok, err := d.loadSubscription(ctx)
	if err != nil {
		return result, nil, err
	}
	if !ok {
		return result, nil, nil
	}

	schedule, ok, err := d.loadSchedule(ctx)
	if err != nil {
		return result, nil, err
	}
	if !ok {
		return result, nil, nil
	}

	sentSet, err := d.loadSentSet(ctx)
	if err != nil {
		return result, nil, err
	}

	now := d.now()
	var entries []TraceEntry
	addEntry := func(rec model.NotificationRecord, status, errText string) {
		if !trace {
			return
		}
		entries = append(entries, TraceEntry{ID: rec.ID, Time: rec.Time, Status: status, Error: errText})
	}

	for _, rec := range schedule {
		fireAt, parseErr := rec.FireAt()
		if parseErr != nil {
			d.logger.Warn("skipping malformed record", "id", rec.ID, "error", parseErr)
			addEntry(rec, StatusSkipped, parseErr.Error())
			continue
		}
		if fireAt.After(now) {
			addEntry(rec, StatusNotDue, "")
			continue
		}
		if containsID(sentSet, rec.ID) {
			addEntry(rec, StatusAlreadySent, "")
			continue
		}

		sendErr := d.transport.Send(ctx, sub, Payload(rec))
		if sendErr == nil {
			sentSet = append(sentSet, rec.ID)
			result.Sent++
			addEntry(rec, StatusSent, "")
			continue
		}
		if errors.Is(sendErr, ErrSubscriptionGone) {
			// The endpoint is dead for every remaining record too.
			result.SubscriptionGone = true
			addEntry(rec, StatusError, sendErr.Error())
			d.logger.Info("retiring expired subscription", "sent", result.Sent)
			if delErr := d.store.Delete(ctx, storage.KeySubscription); delErr != nil {
				return result, entries, fmt.Errorf("delete subscription: %w", delErr)
			}
			break
		}
		// Transient failure: the record stays due and unsent; the next
		// invocation retries it.
		d.logger.Warn("push delivery failed", "id", rec.ID, "error", sendErr)
		addEntry(rec, StatusError, sendErr.Error())
	}

	if result.Sent > 0 {
		if err := d.persistSentSet(ctx, sentSet); err != nil {
			return result, entries, err
		}
	}
	return result, entries, nil
}

func (d *Dispatcher) loadSubscription(ctx context.Context) (model.Subscription, bool, error) {
	raw, err := d.store.Get(ctx, storage.KeySubscription)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Subscription{}, false, nil
	}
	if err != nil {
		return model.Subscription{}, false, fmt.Errorf("load subscription: %w", err)
	}
	var sub model.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return model.Subscription{}, false, fmt.Errorf("decode subscription: %w", err)
	}
	return sub, true, nil
}

func (d *Dispatcher) loadSchedule(ctx context.Context) ([]model.NotificationRecord, bool, error) {
	raw, err := d.store.Get(ctx, storage.KeySchedule)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load schedule: %w", err)
	}
	var schedule []model.NotificationRecord
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, false, fmt.Errorf("decode schedule: %w", err)
	}
	return schedule, true, nil
}

func (d *Dispatcher) loadSentSet(ctx context.Context) ([]string, error) {
	raw, err := d.store.Get(ctx, storage.KeySent)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sent set: %w", err)
	}
	var sent []string
	if err := json.Unmarshal(raw, &sent); err != nil {
		return nil, fmt.Errorf("decode sent set: %w", err)
	}
	return sent, nil
}

func (d *Dispatcher) persistSentSet(ctx context.Context, sent []string) error {
	raw, err := json.Marshal(sent)
	if err != nil {
		return fmt.Errorf("encode sent set: %w", err)
	}
	if err := d.store.Set(ctx, storage.KeySent, raw); err != nil {
		return fmt.Errorf("persist sent set: %w", err)
	}
	return nil
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
