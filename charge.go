package stripekit

import "context"

var (
	chargeOptions = AllowList{
		"description", "capture", "metadata", "receipt_email", "shipping",
		"statement_descriptor", "application_fee", "destination", "transfer_group", "on_behalf_of",
	}

	chargeCustomerEndpoint = Endpoint{
		Path:    "charges",
		Method:  MethodPost,
		Allowed: chargeOptions,
	}

	chargeCardEndpoint = Endpoint{
		Path:    "charges",
		Method:  MethodPost,
		Allowed: append(AllowList{"customer"}, chargeOptions...),
	}

	retrieveChargeEndpoint = Endpoint{Path: "charges/%s", Method: MethodGet}

	updateChargeEndpoint = Endpoint{
		Path:   "charges/%s",
		Method: MethodPost,
		Allowed: AllowList{
			"customer", "description", "fraud_details", "metadata", "receipt_email", "shipping", "transfer_group",
		},
	}

	refundChargeEndpoint = Endpoint{
		Path:    "charges/%s/refund",
		Method:  MethodPost,
		Allowed: AllowList{"amount"},
	}

	captureChargeEndpoint = Endpoint{
		Path:    "charges/%s/capture",
		Method:  MethodPost,
		Allowed: AllowList{"amount", "application_fee", "destination", "receipt_email", "statement_descriptor"},
	}

	listChargesEndpoint = Endpoint{
		Path:    "charges",
		Method:  MethodGet,
		Allowed: AllowList{"customer", "created", "ending_before", "source", "starting_after", "transfer_group"},
	}
)

// ChargeCustomer charges the given amount, in the smallest currency unit, to
// the customer of the given ID.
func (c *Client) ChargeCustomer(ctx context.Context, amount int64, customer string, opts Params) (*Response, error) {
	return c.send(ctx, chargeCustomerEndpoint.Request(Params{
		"amount":   amount,
		"currency": c.conf.Currency,
		"customer": customer,
	}, opts))
}

// ChargeCard charges the given amount, in the smallest currency unit, to the
// given payment source. The source is either a token, the ID of a source
// belonging to the customer passed in the options, or a Params of card
// details.
func (c *Client) ChargeCard(ctx context.Context, amount int64, source interface{}, opts Params) (*Response, error) {
	return c.send(ctx, chargeCardEndpoint.Request(Params{
		"amount":   amount,
		"currency": c.conf.Currency,
		"source":   source,
	}, opts))
}

// ChargeWithCard charges the given amount to the given card, using the card
// field that older versions of the Stripe API expected.
//
// Deprecated: Use ChargeCard, which sends the card as the source.
func (c *Client) ChargeWithCard(ctx context.Context, amount int64, card interface{}, opts Params) (*Response, error) {
	return c.send(ctx, chargeCardEndpoint.Request(Params{
		"amount":   amount,
		"currency": c.conf.Currency,
		"card":     card,
	}, opts))
}

func (c *Client) RetrieveCharge(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveChargeEndpoint.Request(nil, nil, id))
}

func (c *Client) UpdateCharge(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updateChargeEndpoint.Request(nil, opts, id))
}

// RefundCharge refunds the charge of the given ID. The full amount charged
// is refunded unless an amount is given in the options.
func (c *Client) RefundCharge(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, refundChargeEndpoint.Request(nil, opts, id))
}

func (c *Client) CaptureCharge(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, captureChargeEndpoint.Request(nil, opts, id))
}

// ListCharges lists the charges, the given limit being the size of a page.
// Pagination is done with the starting_after and ending_before options.
func (c *Client) ListCharges(ctx context.Context, limit int, opts Params) (*Response, error) {
	return c.send(ctx, listChargesEndpoint.Request(Params{"limit": listLimit(limit)}, opts))
}
