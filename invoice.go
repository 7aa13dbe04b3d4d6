package stripekit

import "context"

var (
	createInvoiceEndpoint = Endpoint{
		Path:   "invoices",
		Method: MethodPost,
		Allowed: AllowList{
			"application_fee", "billing", "days_until_due", "description", "due_date",
			"metadata", "statement_descriptor", "subscription", "tax_percent",
		},
	}

	retrieveInvoiceEndpoint = Endpoint{Path: "invoices/%s", Method: MethodGet}

	listInvoiceLinesEndpoint = Endpoint{
		Path:   "invoices/%s/lines",
		Method: MethodGet,
		Allowed: AllowList{
			"coupon", "customer", "ending_before", "starting_after", "subscription",
			"subscription_billing_cycle_anchor", "subscription_items", "subscription_prorate",
			"subscription_proration_date", "subscription_tax_percent", "subscription_trial_end",
		},
	}

	upcomingInvoiceEndpoint = Endpoint{
		Path:   "invoices/upcoming",
		Method: MethodGet,
		Allowed: AllowList{
			"coupon", "invoice_items", "subscription", "subscription_billing_cycle_anchor",
			"subscription_items", "subscription_prorate", "subscription_proration_date",
			"subscription_tax_percent", "subscription_trial_end",
		},
	}

	updateInvoiceEndpoint = Endpoint{
		Path:   "invoices/%s",
		Method: MethodPost,
		Allowed: AllowList{
			"application_fee", "closed", "days_until_due", "description", "due_date", "forgiven",
			"metadata", "paid", "statement_descriptor", "tax_percent",
		},
	}

	payInvoiceEndpoint = Endpoint{
		Path:    "invoices/%s/pay",
		Method:  MethodPost,
		Allowed: AllowList{"forgive", "source"},
	}

	listInvoicesEndpoint = Endpoint{
		Path:   "invoices",
		Method: MethodGet,
		Allowed: AllowList{
			"customer", "billing", "date", "due_date", "ending_before", "starting_after", "subscription",
		},
	}
)

// CreateInvoice creates an invoice for the customer of the given ID from
// their pending invoice items.
func (c *Client) CreateInvoice(ctx context.Context, customer string, opts Params) (*Response, error) {
	return c.send(ctx, createInvoiceEndpoint.Request(Params{"customer": customer}, opts))
}

func (c *Client) RetrieveInvoice(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveInvoiceEndpoint.Request(nil, nil, id))
}

// ListInvoiceLines lists the line items of the invoice of the given ID.
func (c *Client) ListInvoiceLines(ctx context.Context, id string, limit int, opts Params) (*Response, error) {
	return c.send(ctx, listInvoiceLinesEndpoint.Request(Params{"limit": listLimit(limit)}, opts, id))
}

// UpcomingInvoice retrieves the upcoming invoice for the customer of the
// given ID. The options can be used to preview how changes to a
// subscription would affect the invoice.
func (c *Client) UpcomingInvoice(ctx context.Context, customer string, opts Params) (*Response, error) {
	return c.send(ctx, upcomingInvoiceEndpoint.Request(Params{"customer": customer}, opts))
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updateInvoiceEndpoint.Request(nil, opts, id))
}

// PayInvoice attempts payment of the invoice of the given ID outside of the
// normal collection schedule.
func (c *Client) PayInvoice(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, payInvoiceEndpoint.Request(nil, opts, id))
}

func (c *Client) ListInvoices(ctx context.Context, limit, offset int, opts Params) (*Response, error) {
	return c.send(ctx, listInvoicesEndpoint.Request(Params{
		"limit":  listLimit(limit),
		"offset": offset,
	}, opts))
}
