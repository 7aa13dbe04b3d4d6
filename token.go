package stripekit

import "context"

var (
	createCardTokenEndpoint = Endpoint{
		Path:    "tokens",
		Method:  MethodPost,
		Allowed: AllowList{"card", "customer"},
	}

	retrieveTokenEndpoint = Endpoint{Path: "tokens/%s", Method: MethodGet}
)

// CreateCardToken creates a single use token for a card. The card is given
// in the options, either as the ID of a card belonging to the customer also
// given, or as a Params of card details.
func (c *Client) CreateCardToken(ctx context.Context, opts Params) (*Response, error) {
	return c.send(ctx, createCardTokenEndpoint.Request(nil, opts))
}

func (c *Client) RetrieveToken(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveTokenEndpoint.Request(nil, nil, id))
}
