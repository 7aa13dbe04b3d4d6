package stripekit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"

	"github.com/stripe/stripe-go/v72"
)

const (
	testLiveSecret = "sk_live_123456"
	testTestSecret = "sk_test_123456"
)

// sent is a request as it was received by the test server.
type sent struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	User     string
	Pass     string
	Header   http.Header
}

type testServer struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	reqs   []sent
}

func newTestServer(c *qt.C, status int, body string) *testServer {
	s := &testServer{
		status: status,
		body:   body,
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	c.Cleanup(s.Close)
	return s
}

func (s *testServer) serve(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	user, pass, _ := r.BasicAuth()

	s.mu.Lock()
	s.reqs = append(s.reqs, sent{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Body:     string(b),
		User:     user,
		Pass:     pass,
		Header:   r.Header.Clone(),
	})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	io.WriteString(w, s.body)
}

func (s *testServer) last(c *qt.C) sent {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Assert(s.reqs, qt.Not(qt.HasLen), 0)
	return s.reqs[len(s.reqs)-1]
}

func newTestClient(srv *testServer, opts ...Option) *Client {
	return New(Config{
		TestMode:   true,
		LiveSecret: testLiveSecret,
		TestSecret: testTestSecret,
		Endpoint:   srv.URL,
	}, opts...)
}

func parseForm(c *qt.C, s string) url.Values {
	vals, err := url.ParseQuery(s)
	c.Assert(err, qt.IsNil)
	return vals
}

func TestChargeCustomer(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{"id":"ch_123","object":"charge"}`)
	cli := newTestClient(srv)

	resp, err := cli.ChargeCustomer(context.Background(), 500, "cus_123", Params{
		"capture":  false,
		"metadata": Params{"order": "42"},
		"livemode": true,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(string(resp.Body), qt.Equals, `{"id":"ch_123","object":"charge"}`)

	req := srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodPost)
	c.Assert(req.Path, qt.Equals, "/v1/charges")
	c.Assert(req.RawQuery, qt.Equals, "")
	c.Assert(req.Header.Get("Content-Type"), qt.Equals, "application/x-www-form-urlencoded")
	c.Assert(req.Body, qt.Equals, "amount=500&capture=false&currency=usd&customer=cus_123&metadata[order]=42")
	c.Assert(parseForm(c, req.Body), qt.DeepEquals, url.Values{
		"amount":          {"500"},
		"currency":        {"usd"},
		"customer":        {"cus_123"},
		"capture":         {"false"},
		"metadata[order]": {"42"},
	})
}

func TestListCustomers(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{"object":"list","data":[]}`)
	cli := newTestClient(srv)

	_, err := cli.ListCustomers(context.Background(), 5, 0, nil)
	c.Assert(err, qt.IsNil)

	req := srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodGet)
	c.Assert(req.Path, qt.Equals, "/v1/customers")
	c.Assert(req.RawQuery, qt.Equals, "limit=5&offset=0")
	c.Assert(req.Body, qt.Equals, "")
}

func TestModeSwitch(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	_, err := cli.RetrieveCustomer(context.Background(), "cus_123")
	c.Assert(err, qt.IsNil)

	req := srv.last(c)
	c.Assert(req.User, qt.Equals, testTestSecret)
	c.Assert(req.Pass, qt.Equals, "")

	cli.SetTestMode(false)
	c.Assert(cli.Mode(), qt.Equals, ModeLive)

	_, err = cli.RetrieveCustomer(context.Background(), "cus_123")
	c.Assert(err, qt.IsNil)

	req = srv.last(c)
	c.Assert(req.User, qt.Equals, testLiveSecret)
	c.Assert(req.Pass, qt.Equals, "")
}

func TestDeleteWithBody(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{"deleted":true}`)
	cli := newTestClient(srv)

	r := deleteCouponEndpoint.Request(nil, Params{"metadata": Params{"reason": "expired"}}, "SUMMER")

	_, err := cli.Send(context.Background(), r)
	c.Assert(err, qt.IsNil)

	req := srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodDelete)
	c.Assert(req.Path, qt.Equals, "/v1/coupons/SUMMER")
	c.Assert(req.Body, qt.Equals, "metadata[reason]=expired")
	c.Assert(req.Header.Get("Content-Type"), qt.Equals, "application/x-www-form-urlencoded")

	_, err = cli.DeleteCustomer(context.Background(), "cus_123")
	c.Assert(err, qt.IsNil)

	req = srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodDelete)
	c.Assert(req.Path, qt.Equals, "/v1/customers/cus_123")
	c.Assert(req.Body, qt.Equals, "")
}

func TestUnsubscribe(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	_, err := cli.Unsubscribe(context.Background(), "sub_123", true)
	c.Assert(err, qt.IsNil)

	req := srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodDelete)
	c.Assert(req.Path, qt.Equals, "/v1/subscriptions/sub_123")
	c.Assert(req.RawQuery, qt.Equals, "at_period_end=true")

	_, err = cli.Unsubscribe(context.Background(), "sub_123", false)
	c.Assert(err, qt.IsNil)
	c.Assert(srv.last(c).RawQuery, qt.Equals, "")
}

func TestErrorPayloadPassedThrough(t *testing.T) {
	c := qt.New(t)

	payload := `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`

	srv := newTestServer(c, http.StatusPaymentRequired, payload)
	cli := newTestClient(srv)

	resp, err := cli.ChargeCard(context.Background(), 500, "tok_chargeDeclined", nil)
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusPaymentRequired)
	c.Assert(string(resp.Body), qt.Equals, payload)
	c.Assert(resp.OK(), qt.IsFalse)

	var serr *stripe.Error

	c.Assert(errors.As(resp.Err(), &serr), qt.IsTrue)
	c.Assert(serr.Msg, qt.Equals, "Your card was declined.")
	c.Assert(serr.Type, qt.Equals, stripe.ErrorTypeCard)
	c.Assert(serr.HTTPStatusCode, qt.Equals, http.StatusPaymentRequired)
}

func TestResponseErrUndecodable(t *testing.T) {
	c := qt.New(t)

	resp := &Response{StatusCode: http.StatusBadGateway, Body: []byte("<html>bad gateway</html>")}
	c.Assert(resp.Err(), qt.ErrorMatches, "stripekit: unexpected response 502")

	resp = &Response{StatusCode: http.StatusOK, Body: []byte(`{"id":"cus_123"}`)}
	c.Assert(resp.Err(), qt.IsNil)

	var v struct {
		ID string `json:"id"`
	}

	c.Assert(resp.Decode(&v), qt.IsNil)
	c.Assert(v.ID, qt.Equals, "cus_123")
}

func TestEmptyBodyIsNotTransportError(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, "")
	cli := newTestClient(srv)

	resp, err := cli.RetrieveToken(context.Background(), "tok_123")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Body, qt.HasLen, 0)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
}

func TestTransportError(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	store := newTestStore()

	cli := New(Config{
		LiveSecret: testLiveSecret,
		Endpoint:   endpoint,
	}, WithStore(store))

	resp, err := cli.RetrieveCharge(context.Background(), "ch_123")
	c.Assert(resp, qt.IsNil)
	c.Assert(IsTransportError(err), qt.IsTrue)

	var terr *TransportError

	c.Assert(errors.As(err, &terr), qt.IsTrue)
	c.Assert(terr.Method, qt.Equals, MethodGet)
	c.Assert(terr.URL, qt.Equals, endpoint+"/v1/charges/ch_123")

	c.Assert(store.calls, qt.HasLen, 1)
	c.Assert(store.calls[0].StatusCode, qt.Equals, 0)
	c.Assert(store.calls[0].Err, qt.Not(qt.Equals), "")
}

func TestContextCancelled(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cli.ListCharges(ctx, 10, nil)
	c.Assert(IsTransportError(err), qt.IsTrue)
	c.Assert(errors.Is(err, context.Canceled), qt.IsTrue)
}

func TestMissingSecret(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)

	cli := New(Config{
		TestMode:   true,
		LiveSecret: testLiveSecret,
		Endpoint:   srv.URL,
	})

	_, err := cli.RetrieveCoupon(context.Background(), "SUMMER")
	c.Assert(errors.Is(err, ErrMissingSecret), qt.IsTrue)
	c.Assert(IsTransportError(err), qt.IsFalse)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	c.Assert(srv.reqs, qt.HasLen, 0)
}

func TestTLSVerification(t *testing.T) {
	c := qt.New(t)

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	// A Config that says nothing about verification must verify.
	conf := Config{
		LiveSecret: testLiveSecret,
		Endpoint:   srv.URL,
	}

	_, err := New(conf).RetrieveProduct(context.Background(), "prod_123")
	c.Assert(IsTransportError(err), qt.IsTrue)

	conf.InsecureSkipVerify = true

	var buf bytes.Buffer

	resp, err := New(conf, WithLogger(zerolog.New(&buf))).RetrieveProduct(context.Background(), "prod_123")
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(buf.String(), qt.Contains, "TLS certificate verification is disabled")
}

func TestVersionHeader(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)

	cli := New(Config{
		LiveSecret: testLiveSecret,
		Endpoint:   srv.URL,
		Version:    DefaultVersion,
	})

	_, err := cli.RetrievePlan(context.Background(), "gold")
	c.Assert(err, qt.IsNil)
	c.Assert(srv.last(c).Header.Get("Stripe-Version"), qt.Equals, stripe.APIVersion)

	_, err = newTestClient(srv).RetrievePlan(context.Background(), "gold")
	c.Assert(err, qt.IsNil)
	c.Assert(srv.last(c).Header.Get("Stripe-Version"), qt.Equals, "")
}

func TestStoreRecordsCalls(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusCreated, `{}`)
	store := newTestStore()

	var buf bytes.Buffer

	cli := newTestClient(srv, WithStore(store), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := cli.CreateCardToken(context.Background(), Params{
		"card": Params{"number": "4242424242424242", "exp_month": 12, "exp_year": 2030, "cvc": "123"},
	})
	c.Assert(err, qt.IsNil)

	c.Assert(store.calls, qt.HasLen, 1)

	call := store.calls[0]
	c.Assert(call.Method, qt.Equals, MethodPost)
	c.Assert(call.Path, qt.Equals, "tokens")
	c.Assert(call.Mode, qt.Equals, ModeTest)
	c.Assert(call.StatusCode, qt.Equals, http.StatusCreated)
	c.Assert(call.Err, qt.Equals, "")

	c.Assert(buf.String(), qt.Contains, `"path":"tokens"`)
	c.Assert(buf.String(), qt.Not(qt.Contains), "4242424242424242")
	c.Assert(buf.String(), qt.Not(qt.Contains), testTestSecret)
}

func TestStoreFailureDoesNotFailRequest(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{"id":"cus_123"}`)
	store := newTestStore()
	store.err = errors.New("connection refused")

	var buf bytes.Buffer

	cli := newTestClient(srv, WithStore(store), WithLogger(zerolog.New(&buf)))

	resp, err := cli.RetrieveCustomer(context.Background(), "cus_123")
	c.Assert(err, qt.IsNil)
	c.Assert(string(resp.Body), qt.Equals, `{"id":"cus_123"}`)
	c.Assert(buf.String(), qt.Contains, "failed to log request")
}

func TestConcurrentModeSwitch(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			cli.SetTestMode(i%2 == 0)
			_, err := cli.RetrieveInvoice(context.Background(), "in_123")
			c.Check(err, qt.IsNil)
		}(i)
	}
	wg.Wait()

	srv.mu.Lock()
	defer srv.mu.Unlock()

	c.Assert(srv.reqs, qt.HasLen, 8)

	for _, req := range srv.reqs {
		c.Assert(req.User == testTestSecret || req.User == testLiveSecret, qt.IsTrue)
	}
}

func Test_Stripe(t *testing.T) {
	secret := os.Getenv("STRIPE_SECRET")

	if secret == "" {
		t.Skip("STRIPE_SECRET not set, skipping")
	}

	c := qt.New(t)

	cli := New(Config{
		TestMode:   true,
		TestSecret: secret,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	resp, err := cli.CreateCustomer(ctx, "tok_visa", "customer@stripekit.test", Params{
		"description": "stripekit test customer",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Err(), qt.IsNil)

	var cus stripe.Customer

	c.Assert(resp.Decode(&cus), qt.IsNil)

	resp, err = cli.ChargeCustomer(ctx, 500, cus.ID, Params{
		"capture":  false,
		"metadata": Params{"order": "42"},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Err(), qt.IsNil)

	resp, err = cli.DeleteCustomer(ctx, cus.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(resp.Err(), qt.IsNil)
}

func TestCreateCoupon(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	tests := []struct {
		opts     Params
		expected string
	}{
		{
			Params{"amount_off": 500, "percent_off": 25},
			"amount_off=500&currency=usd&duration=once",
		},
		{
			Params{"percent_off": 25, "redeem_by": 1700000000},
			"duration=once&percent_off=25&redeem_by=1700000000",
		},
		{
			Params{"amount_off": 0, "valid": true},
			"amount_off=0&currency=usd&duration=once",
		},
		{
			Params{"amount_off": nil, "percent_off": 25},
			"duration=once&percent_off=25",
		},
	}

	for i, test := range tests {
		_, err := cli.CreateCoupon(context.Background(), "once", test.opts)
		c.Assert(err, qt.IsNil, qt.Commentf("tests[%d]", i))
		c.Assert(srv.last(c).Body, qt.Equals, test.expected, qt.Commentf("tests[%d]", i))
	}
}

func TestPassThroughParams(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)
	cli := newTestClient(srv)

	_, err := cli.UpdateCustomer(context.Background(), "cus_123", Params{
		"email":          "new@example.com",
		"invoice_prefix": "ACME",
	})
	c.Assert(err, qt.IsNil)

	req := srv.last(c)
	c.Assert(req.Method, qt.Equals, http.MethodPost)
	c.Assert(req.Path, qt.Equals, "/v1/customers/cus_123")
	c.Assert(req.Body, qt.Equals, "email=new%40example.com&invoice_prefix=ACME")

	_, err = cli.ListSubscriptions(context.Background(), Params{"customer": "cus_123", "status": "all"})
	c.Assert(err, qt.IsNil)

	req = srv.last(c)
	c.Assert(req.Path, qt.Equals, "/v1/subscriptions")
	c.Assert(req.RawQuery, qt.Equals, "customer=cus_123&status=all")
}

func TestCreatePlanCurrency(t *testing.T) {
	c := qt.New(t)

	srv := newTestServer(c, http.StatusOK, `{}`)

	cli := New(Config{
		LiveSecret: testLiveSecret,
		Currency:   "gbp",
		Endpoint:   srv.URL,
	})

	_, err := cli.CreatePlan(context.Background(), "month", "prod_123", Params{"amount": 999, "nickname": "Gold"})
	c.Assert(err, qt.IsNil)

	c.Assert(parseForm(c, srv.last(c).Body).Get("currency"), qt.Equals, "gbp")
}
