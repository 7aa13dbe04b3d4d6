package stripekit

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

// maxHookPayload is the most of a webhook request body that is read.
const maxHookPayload = 65536

// HookFunc handles a single verified event. This is like an
// http.HandlerFunc, only it is also passed the event sent from Stripe.
type HookFunc func(stripe.Event, http.ResponseWriter, *http.Request)

// HookHandler is the http.Handler for the endpoint Stripe delivers webhook
// events to. A delivery is answered with,
//
//   - 400 if its signature does not verify, or its mode is not the expected
//     one
//   - 202 if the Store has already seen the event
//   - 500 if the Store fails
//   - 200 if no HookFunc is registered for the event type
//
// otherwise the HookFunc registered for the event type writes the response.
type HookHandler struct {
	secret string
	mode   func() Mode
	store  Store
	log    zerolog.Logger

	mu    sync.RWMutex
	hooks map[string]HookFunc
}

// HookOption configures a HookHandler.
type HookOption func(*HookHandler)

// WithHookStore sets the Store every verified delivery is recorded in. The
// Store is what drops repeated deliveries of the same event.
func WithHookStore(s Store) HookOption {
	return func(h *HookHandler) {
		h.store = s
	}
}

// WithHookLogger sets the logger for the HookHandler.
func WithHookLogger(log zerolog.Logger) HookOption {
	return func(h *HookHandler) {
		h.log = log
	}
}

// WithHookMode rejects events whose livemode does not match the Mode
// returned from the given function at the time of delivery.
func WithHookMode(mode func() Mode) HookOption {
	return func(h *HookHandler) {
		h.mode = mode
	}
}

// NewHookHandler returns a HookHandler verifying deliveries against the given
// signing secret.
func NewHookHandler(secret string, opts ...HookOption) *HookHandler {
	h := &HookHandler{
		secret: secret,
		log:    zerolog.Nop(),
		hooks:  make(map[string]HookFunc),
	}

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HookHandler returns a HookHandler for the Client's webhook secret. The
// deliveries are recorded in the Client's Store, logged with the Client's
// logger, and have to match the mode the Client is in.
func (c *Client) HookHandler() *HookHandler {
	opts := []HookOption{
		WithHookLogger(c.log),
		WithHookMode(c.Mode),
	}

	if c.store != nil {
		opts = append(opts, WithHookStore(c.store))
	}
	return NewHookHandler(c.conf.WebhookSecret, opts...)
}

// Handle registers the given HookFunc for the given event type, replacing
// any HookFunc already registered for it.
func (h *HookHandler) Handle(typ string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks[typ] = fn
}

func (h *HookHandler) hook(typ string) (HookFunc, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	fn, ok := h.hooks[typ]
	return fn, ok
}

func eventMode(e stripe.Event) Mode {
	if e.Livemode {
		return ModeLive
	}
	return ModeTest
}

// ServeHTTP verifies, records, and dispatches a single delivery.
func (h *HookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxHookPayload))

	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read webhook payload")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.secret)

	if err != nil {
		h.log.Warn().Err(err).Msg("webhook verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	mode := eventMode(event)

	log := h.log.With().
		Str("event", event.ID).
		Str("type", event.Type).
		Stringer("mode", mode).
		Logger()

	if h.mode != nil {
		if want := h.mode(); want != mode {
			log.Warn().Stringer("expected", want).Msg("webhook event from wrong mode")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	if h.store != nil {
		err := h.store.LogDelivery(&Delivery{
			ID:       event.ID,
			Type:     event.Type,
			Mode:     mode,
			Received: time.Now(),
		})

		if errors.Is(err, ErrEventExists) {
			log.Debug().Msg("webhook event already received")
			w.WriteHeader(http.StatusAccepted)
			return
		}

		if err != nil {
			log.Error().Err(err).Msg("failed to log webhook event")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	fn, ok := h.hook(event.Type)

	if !ok {
		log.Debug().Msg("unhandled webhook event")
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Debug().Msg("webhook event received")
	fn(event, w, r)
}
