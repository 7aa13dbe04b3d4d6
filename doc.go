// Package stripekit provides a thin client for the Stripe API. Each
// operation on the client assembles the parameters for a single resource and
// action, and sends them through the same dispatch path, returning the raw
// response from Stripe untouched.
//
// stripekit.Client is the main way to interact with the Stripe API. It is
// configured with a live secret and a test secret, and a flag selecting
// which of the two authenticates requests,
//
//	client := stripekit.New(stripekit.Config{
//	    TestMode:   true,
//	    LiveSecret: os.Getenv("STRIPE_LIVE_SECRET"),
//	    TestSecret: os.Getenv("STRIPE_TEST_SECRET"),
//	})
//
//	resp, err := client.ChargeCustomer(ctx, 500, "cus_123456", stripekit.Params{
//	    "capture":  false,
//	    "metadata": stripekit.Params{"order": "42"},
//	})
//
//	if err != nil {
//	    // The request never made it to Stripe.
//	}
//
//	if !resp.OK() {
//	    return resp.Err()
//	}
//
// the options given to an operation are filtered against the fields that
// operation accepts, anything else is dropped without error. A field counts
// as given if its key is in the Params, so zero and false values are sent
// too. Set a field to nil to leave it out.
//
// The returned stripekit.Response holds the status code, headers, and body
// of the response as they were received. Nothing about the body is
// inspected by the client, an error payload from Stripe is returned the same
// way as any other. The Response has the helper methods OK, Decode, and Err
// for callers who want to interpret it. An error is only returned from an
// operation when the request could not be completed, in which case it will
// be a *stripekit.TransportError.
//
// stripekit.Params allows for specifying the request parameters, these are
// encoded to x-www-url-formencoded with nested maps and slices using the
// bracket convention, for example,
//
//	stripekit.Params{
//	    "invoice_settings": stripekit.Params{
//	        "default_payment_method": "pm_123456",
//	    },
//	}
//
// would be encoded to,
//
//	invoice_settings[default_payment_method]=pm_123456
//
// stripekit.Store is an interface that allows for keeping a ledger of the
// requests sent to Stripe, and of the webhook events received from it. An
// implementation of this interface for PostgreSQL comes with this library
// out of the box.
//
// stripekit.HookHandler is an http.Handler that verifies and dispatches
// webhook events. The one returned from Client.HookHandler records each
// delivery in the Client's Store, which drops events already seen, and
// rejects events from the mode the Client is not in,
//
//	hook := client.HookHandler()
//	hook.Handle("charge.succeeded", func(e stripe.Event, w http.ResponseWriter, r *http.Request) {
//	    w.WriteHeader(http.StatusOK)
//	})
//
//	mux := http.NewServeMux()
//	mux.Handle("/stripe-hook", hook)
//
// Certificate verification can only be turned off by setting
// Config.InsecureSkipVerify, which should never be done against the real
// API.
package stripekit
