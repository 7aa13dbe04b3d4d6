package stripekit

import "context"

var (
	createCustomerEndpoint = Endpoint{
		Path:   "customers",
		Method: MethodPost,
		Allowed: AllowList{
			"description", "account_balance", "business_vat_id", "coupon", "default_source", "metadata", "shipping",
		},
	}

	retrieveCustomerEndpoint = Endpoint{Path: "customers/%s", Method: MethodGet}
	updateCustomerEndpoint   = Endpoint{Path: "customers/%s", Method: MethodPost}
	deleteCustomerEndpoint   = Endpoint{Path: "customers/%s", Method: MethodDelete}

	listCustomersEndpoint = Endpoint{
		Path:    "customers",
		Method:  MethodGet,
		Allowed: AllowList{"created", "email", "ending_before", "starting_after"},
	}

	subscribeEndpoint = Endpoint{
		Path:   "subscriptions",
		Method: MethodPost,
		Allowed: AllowList{
			"application_fee_percent", "billing", "billing_cycle_anchor", "coupon", "days_until_due", "items",
			"metadata", "prorate", "source", "tax_percent", "trial_end", "trial_period_days",
		},
	}

	unsubscribeEndpoint = Endpoint{Path: "subscriptions/%s", Method: MethodDelete}

	deleteCustomerDiscountEndpoint = Endpoint{Path: "customers/%s/discount", Method: MethodDelete}
)

// CreateCustomer creates a new customer with the given payment source and
// email.
func (c *Client) CreateCustomer(ctx context.Context, source interface{}, email string, opts Params) (*Response, error) {
	return c.send(ctx, createCustomerEndpoint.Request(Params{
		"source": source,
		"email":  email,
	}, opts))
}

func (c *Client) RetrieveCustomer(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveCustomerEndpoint.Request(nil, nil, id))
}

// UpdateCustomer updates the customer of the given ID. The given Params are
// sent as they are, without filtering.
func (c *Client) UpdateCustomer(ctx context.Context, id string, params Params) (*Response, error) {
	return c.send(ctx, updateCustomerEndpoint.Request(nil, params, id))
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteCustomerEndpoint.Request(nil, nil, id))
}

// ListCustomers lists the customers using offset pagination. The limit and
// offset are always sent, and the starting_after and ending_before options
// can be given for cursor pagination instead, depending on what the version
// of the API in use expects.
func (c *Client) ListCustomers(ctx context.Context, limit, offset int, opts Params) (*Response, error) {
	return c.send(ctx, listCustomersEndpoint.Request(Params{
		"limit":  listLimit(limit),
		"offset": offset,
	}, opts))
}

// Subscribe subscribes the customer of the given ID to the given plan.
func (c *Client) Subscribe(ctx context.Context, customer, plan string, opts Params) (*Response, error) {
	return c.send(ctx, subscribeEndpoint.Request(Params{
		"customer": customer,
		"plan":     plan,
	}, opts))
}

// Unsubscribe cancels the subscription of the given ID. If atPeriodEnd is
// true then the subscription stays active until the end of the current
// period.
func (c *Client) Unsubscribe(ctx context.Context, subscription string, atPeriodEnd bool) (*Response, error) {
	r := unsubscribeEndpoint.Request(nil, nil, subscription)

	if atPeriodEnd {
		r.Query = Params{"at_period_end": true}
	}
	return c.send(ctx, r)
}

func (c *Client) DeleteCustomerDiscount(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteCustomerDiscountEndpoint.Request(nil, nil, id))
}
