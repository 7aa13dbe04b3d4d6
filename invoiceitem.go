package stripekit

import "context"

var (
	createInvoiceItemEndpoint = Endpoint{
		Path:   "invoiceitems",
		Method: MethodPost,
		Allowed: AllowList{
			"amount", "description", "quantity", "unit_amount", "discountable", "invoice", "metadata", "subscription",
		},
	}

	retrieveInvoiceItemEndpoint = Endpoint{Path: "invoiceitems/%s", Method: MethodGet}

	updateInvoiceItemEndpoint = Endpoint{
		Path:    "invoiceitems/%s",
		Method:  MethodPost,
		Allowed: AllowList{"amount", "description", "discountable", "metadata", "quantity", "unit_amount"},
	}

	deleteInvoiceItemEndpoint = Endpoint{Path: "invoiceitems/%s", Method: MethodDelete}

	listInvoiceItemsEndpoint = Endpoint{
		Path:    "invoiceitems",
		Method:  MethodGet,
		Allowed: AllowList{"customer", "created", "ending_before", "starting_after", "invoice"},
	}
)

// CreateInvoiceItem adds an item to the upcoming invoice of the customer of
// the given ID, or to the draft invoice given in the options.
func (c *Client) CreateInvoiceItem(ctx context.Context, customer string, opts Params) (*Response, error) {
	return c.send(ctx, createInvoiceItemEndpoint.Request(Params{
		"customer": customer,
		"currency": c.conf.Currency,
	}, opts))
}

func (c *Client) RetrieveInvoiceItem(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveInvoiceItemEndpoint.Request(nil, nil, id))
}

func (c *Client) UpdateInvoiceItem(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updateInvoiceItemEndpoint.Request(nil, opts, id))
}

func (c *Client) DeleteInvoiceItem(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteInvoiceItemEndpoint.Request(nil, nil, id))
}

func (c *Client) ListInvoiceItems(ctx context.Context, limit, offset int, opts Params) (*Response, error) {
	return c.send(ctx, listInvoiceItemsEndpoint.Request(Params{
		"limit":  listLimit(limit),
		"offset": offset,
	}, opts))
}
