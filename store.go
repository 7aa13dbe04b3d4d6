package stripekit

import "time"

// Call is the record of a single request sent to Stripe. It never holds the
// secret used, or the parameters sent, since those may contain card details.
type Call struct {
	Method     Method
	Path       string
	Mode       Mode
	StatusCode int           // StatusCode is 0 if the request failed.
	Err        string        // Err is the transport error, if any.
	Started    time.Time
	Duration   time.Duration
}

// Delivery is the record of a single webhook event received from Stripe.
type Delivery struct {
	ID       string
	Type     string
	Mode     Mode // Mode is ModeLive for events from live mode.
	Received time.Time
}

// Store provides an interface for keeping a ledger of the requests sent to
// Stripe and of the webhook events received from it, in an underlying data
// store such as a database.
type Store interface {
	// LogRequest will store the given Call. This is invoked once for every
	// request the Client dispatches, whether it succeeded or not. An error
	// returned from here is logged by the Client, and does not affect the
	// result of the request.
	LogRequest(*Call) error

	// LogDelivery will store the given Delivery. If a Delivery with the same
	// event ID has already been stored, then this should return
	// ErrEventExists. The check and the insert must be atomic, as the same
	// event can be delivered concurrently.
	LogDelivery(*Delivery) error
}
