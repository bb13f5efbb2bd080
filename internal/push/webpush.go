package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"minderd/internal/model"
)

// VAPIDConfig authorizes push delivery to the browser's push service.
type VAPIDConfig struct {
	Subject    string
	PublicKey  string
	PrivateKey string
}

// WebPushTransport delivers payloads over the Web Push protocol with VAPID
// authentication. 410 and 404 responses mark the endpoint gone.
type WebPushTransport struct {
	cfg VAPIDConfig
	ttl int
}

func NewWebPushTransport(cfg VAPIDConfig) *WebPushTransport {
	return &WebPushTransport{cfg: cfg, ttl: 60}
}

func (t *WebPushTransport) Send(ctx context.Context, sub model.Subscription, payload model.PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Keys.Auth,
			P256dh: sub.Keys.P256dh,
		},
	}, &webpush.Options{
		Subscriber:      t.cfg.Subject,
		VAPIDPublicKey:  t.cfg.PublicKey,
		VAPIDPrivateKey: t.cfg.PrivateKey,
		TTL:             t.ttl,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrSubscriptionGone, resp.StatusCode)
	case resp.StatusCode >= 300:
		return fmt.Errorf("push: unexpected status %d", resp.StatusCode)
	default:
		return nil
	}
}
