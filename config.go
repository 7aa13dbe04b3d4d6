package stripekit

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/stripe/stripe-go/v72"

	"gopkg.in/yaml.v3"
)

// DefaultVersion is the version of the Stripe API the stripe-go types used by
// this package were built against. Set it as Config.Version to pin requests
// to it, otherwise the account's default version applies.
const DefaultVersion = stripe.APIVersion

// Config holds the configuration for a Client. It is copied into the Client
// on creation and never modified afterwards.
type Config struct {
	// TestMode selects which of the two secrets authenticates requests. The
	// Client can switch modes later via SetTestMode.
	TestMode bool `yaml:"test_mode"`

	LiveSecret string `yaml:"live_secret"`
	TestSecret string `yaml:"test_secret"`

	// InsecureSkipVerify turns off verification of the API's TLS
	// certificate. This leaves the connection open to interception, and
	// should only ever be set against a local stand-in for the API.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// WebhookSecret is the signing secret used to verify webhook events.
	WebhookSecret string `yaml:"webhook_secret"`

	// Currency is used by the operations that require a currency, defaults
	// to "usd".
	Currency string `yaml:"currency"`

	// Endpoint is the API root, defaults to stripe.APIURL.
	Endpoint string `yaml:"endpoint"`

	// Version is sent as the Stripe-Version header if set.
	Version string `yaml:"version"`
}

// DefaultConfig returns a Config with the default currency and API endpoint
// set.
func DefaultConfig() Config {
	return Config{
		Currency: "usd",
		Endpoint: stripe.APIURL,
	}
}

// configDoc is the YAML document for a Config. verify_ssl is accepted as
// the inverse of insecure_skip_verify, and wins if both are given.
type configDoc struct {
	Config `yaml:",inline"`

	VerifySSL *bool `yaml:"verify_ssl"`
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.Currency == "" {
		c.Currency = def.Currency
	}
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	return c
}

// DecodeConfig decodes a YAML encoded Config from the given io.Reader. Fields
// missing from the document keep the values from DefaultConfig, so
// certificate verification stays on unless verify_ssl is set to false, or
// insecure_skip_verify to true.
func DecodeConfig(r io.Reader) (Config, error) {
	doc := configDoc{Config: DefaultConfig()}

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return doc.Config, nil
		}
		return DefaultConfig(), fmt.Errorf("stripekit: decode config: %w", err)
	}

	if doc.VerifySSL != nil {
		doc.InsecureSkipVerify = !*doc.VerifySSL
	}
	return doc.Config.withDefaults(), nil
}

func envBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)

	if s == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(s)

	if err != nil {
		return def, fmt.Errorf("stripekit: invalid %s: %w", key, err)
	}
	return b, nil
}

func envString(key, def string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return def
}

// ConfigFromEnv builds a Config from the STRIPE_TEST_MODE,
// STRIPE_LIVE_SECRET, STRIPE_TEST_SECRET, STRIPE_VERIFY_SSL,
// STRIPE_WEBHOOK_SECRET, STRIPE_CURRENCY, STRIPE_ENDPOINT, and
// STRIPE_VERSION environment variables. Unset variables keep the values from
// DefaultConfig. STRIPE_VERIFY_SSL set to false is the only way to turn off
// certificate verification.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	var err error

	if cfg.TestMode, err = envBool("STRIPE_TEST_MODE", cfg.TestMode); err != nil {
		return cfg, err
	}

	verify, err := envBool("STRIPE_VERIFY_SSL", !cfg.InsecureSkipVerify)

	if err != nil {
		return cfg, err
	}
	cfg.InsecureSkipVerify = !verify

	cfg.LiveSecret = envString("STRIPE_LIVE_SECRET", cfg.LiveSecret)
	cfg.TestSecret = envString("STRIPE_TEST_SECRET", cfg.TestSecret)
	cfg.WebhookSecret = envString("STRIPE_WEBHOOK_SECRET", cfg.WebhookSecret)
	cfg.Currency = envString("STRIPE_CURRENCY", cfg.Currency)
	cfg.Endpoint = envString("STRIPE_ENDPOINT", cfg.Endpoint)
	cfg.Version = envString("STRIPE_VERSION", cfg.Version)

	return cfg, nil
}
