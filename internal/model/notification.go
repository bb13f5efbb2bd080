package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidSubscription = errors.New("model: invalid push subscription")
	ErrInvalidRecord       = errors.New("model: invalid notification record")
)

// NotificationRecord is the serializable, server-relayed form of a scheduled
// reminder. ID is the deduplication key, stable per task+kind within one
// schedule generation.
type NotificationRecord struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Emoji string `json:"emoji"`
	Tag   string `json:"tag"`
}

func (r NotificationRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if _, err := r.FireAt(); err != nil {
		return err
	}
	return nil
}

// FireAt parses the record's RFC 3339 delivery instant.
func (r NotificationRecord) FireAt() (time.Time, error) {
	at, err := time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidRecord, r.Time)
	}
	return at, nil
}

// SubscriptionKeys carries the browser push manager's encryption keys.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription is the opaque push endpoint descriptor supplied by the
// browser, stored until replaced or invalidated by the push service.
type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Endpoint) == "" {
		return fmt.Errorf("%w: missing endpoint", ErrInvalidSubscription)
	}
	if strings.TrimSpace(s.Keys.Auth) == "" || strings.TrimSpace(s.Keys.P256dh) == "" {
		return fmt.Errorf("%w: missing auth/p256dh keys", ErrInvalidSubscription)
	}
	return nil
}

// PushPayload is the wire format delivered to the push endpoint. Title is
// composed as "<emoji> <title>" for task reminders.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	Icon  string `json:"icon"`
}
