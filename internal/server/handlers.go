// Package server hosts the relay's HTTP surface: subscription intake,
// schedule storage, and the externally-triggered delivery tick.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minderd/internal/model"
	"minderd/internal/push"
	"minderd/internal/storage"
)

type Handler struct {
	store      storage.KV
	dispatcher *push.Dispatcher
	transport  push.Transport
	logger     *slog.Logger
}

func NewHandler(store storage.KV, dispatcher *push.Dispatcher, transport push.Transport, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, dispatcher: dispatcher, transport: transport, logger: logger}
}

// HandleSubscribe stores the browser's push subscription as the current one.
func (h *Handler) HandleSubscribe(c *gin.Context) {
	var sub model.Subscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription"})
		return
	}
	if err := sub.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Set(c.Request.Context(), storage.KeySubscription, raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type scheduleRequest struct {
	Notifications json.RawMessage `json:"notifications"`
}

// HandleSchedule replaces the stored schedule and resets sent tracking so a
// new day's plan never inherits the previous generation's dedup ids.
func (h *Handler) HandleSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notifications array"})
		return
	}
	// A JSON null decodes into a nil slice without error; only a real array
	// is accepted.
	var records []model.NotificationRecord
	if len(req.Notifications) == 0 || json.Unmarshal(req.Notifications, &records) != nil || records == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notifications array"})
		return
	}

	raw, err := json.Marshal(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.store.Set(ctx, storage.KeySchedule, raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Delete(ctx, storage.KeySent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(records)})
}

// HandleTick runs one delivery pass. The external job scheduler triggers it
// periodically; with ?trace=1 it also reports per-record status.
func (h *Handler) HandleTick(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("trace") == "1" {
		result, entries, err := h.dispatcher.RunTrace(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		body := gin.H{"sent": result.Sent, "trace": entries}
		if result.SubscriptionGone {
			body["error"] = "Subscription expired"
		}
		c.JSON(http.StatusOK, body)
		return
	}

	result, err := h.dispatcher.Run(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.SubscriptionGone {
		c.JSON(http.StatusOK, gin.H{"sent": result.Sent, "error": "Subscription expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": result.Sent})
}

// HandleDebug reports the stored push state without sending anything.
func (h *Handler) HandleDebug(c *gin.Context) {
	ctx := c.Request.Context()

	body := gin.H{"serverTime": time.Now().UTC().Format(time.RFC3339)}

	if raw, err := h.store.Get(ctx, storage.KeySubscription); err == nil {
		var sub model.Subscription
		if err := json.Unmarshal(raw, &sub); err == nil {
			endpoint := sub.Endpoint
			if len(endpoint) > 20 {
				endpoint = endpoint[len(endpoint)-20:]
			}
			body["hasEndpoint"] = sub.Endpoint != ""
			body["endpointPreview"] = endpoint
			body["hasAuthKey"] = sub.Keys.Auth != ""
			body["hasP256dh"] = sub.Keys.P256dh != ""
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if raw, err := h.store.Get(ctx, storage.KeySchedule); err == nil {
		var schedule []model.NotificationRecord
		if json.Unmarshal(raw, &schedule) == nil {
			body["schedule"] = schedule
		}
	}
	if raw, err := h.store.Get(ctx, storage.KeySent); err == nil {
		var sent []string
		if json.Unmarshal(raw, &sent) == nil {
			body["sent"] = sent
		}
	}
	c.JSON(http.StatusOK, body)
}

// HandleTestSend delivers one immediate test push to the stored
// subscription, reporting the transport outcome.
func (h *Handler) HandleTestSend(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := h.store.Get(ctx, storage.KeySubscription)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"error": "No subscription"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var sub model.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := model.PushPayload{
		Title: "🧪 Test from minderd",
		Body:  "Push delivery works!",
		Tag:   "test",
		Icon:  push.Icon,
	}
	if err := h.transport.Send(ctx, sub, payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
