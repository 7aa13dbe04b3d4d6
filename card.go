package stripekit

import "context"

var (
	createCardEndpoint = Endpoint{
		Path:    "customers/%s/sources",
		Method:  MethodPost,
		Allowed: AllowList{"metadata"},
	}

	retrieveCardEndpoint = Endpoint{Path: "customers/%s/sources/%s", Method: MethodGet}

	updateCardEndpoint = Endpoint{
		Path:   "customers/%s/sources/%s",
		Method: MethodPost,
		Allowed: AllowList{
			"address_city", "address_country", "address_line1", "address_line2", "address_state",
			"address_zip", "exp_month", "exp_year", "metadata", "name",
		},
	}

	deleteCardEndpoint = Endpoint{Path: "customers/%s/sources/%s", Method: MethodDelete}

	listCardsEndpoint = Endpoint{
		Path:    "customers/%s/sources",
		Method:  MethodGet,
		Allowed: AllowList{"starting_after", "ending_before"},
	}
)

// CreateCard attaches the given source to the customer of the given ID. The
// source is either a token, or a Params of card details.
func (c *Client) CreateCard(ctx context.Context, customer string, source interface{}, opts Params) (*Response, error) {
	return c.send(ctx, createCardEndpoint.Request(Params{"source": source}, opts, customer))
}

func (c *Client) RetrieveCard(ctx context.Context, customer, card string) (*Response, error) {
	return c.send(ctx, retrieveCardEndpoint.Request(nil, nil, customer, card))
}

func (c *Client) UpdateCard(ctx context.Context, customer, card string, opts Params) (*Response, error) {
	return c.send(ctx, updateCardEndpoint.Request(nil, opts, customer, card))
}

func (c *Client) DeleteCard(ctx context.Context, customer, card string) (*Response, error) {
	return c.send(ctx, deleteCardEndpoint.Request(nil, nil, customer, card))
}

// ListCards lists the payment sources of the customer of the given ID.
func (c *Client) ListCards(ctx context.Context, customer string, limit int, opts Params) (*Response, error) {
	return c.send(ctx, listCardsEndpoint.Request(Params{"limit": listLimit(limit)}, opts, customer))
}
