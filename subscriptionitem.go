package stripekit

import "context"

var (
	createSubscriptionItemEndpoint = Endpoint{
		Path:    "subscription_items",
		Method:  MethodPost,
		Allowed: AllowList{"metadata", "prorate", "proration_date", "quantity"},
	}

	retrieveSubscriptionItemEndpoint = Endpoint{Path: "subscription_items/%s", Method: MethodGet}

	updateSubscriptionItemEndpoint = Endpoint{
		Path:    "subscription_items/%s",
		Method:  MethodPost,
		Allowed: AllowList{"metadata", "plan", "prorate", "proration_date", "quantity"},
	}

	deleteSubscriptionItemEndpoint = Endpoint{Path: "subscription_items/%s", Method: MethodDelete}

	listSubscriptionItemsEndpoint = Endpoint{
		Path:    "subscription_items",
		Method:  MethodGet,
		Allowed: AllowList{"starting_after", "ending_before"},
	}
)

// CreateSubscriptionItem adds the given plan to the subscription of the
// given ID.
func (c *Client) CreateSubscriptionItem(ctx context.Context, subscription, plan string, opts Params) (*Response, error) {
	return c.send(ctx, createSubscriptionItemEndpoint.Request(Params{
		"subscription": subscription,
		"plan":         plan,
	}, opts))
}

func (c *Client) RetrieveSubscriptionItem(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveSubscriptionItemEndpoint.Request(nil, nil, id))
}

func (c *Client) UpdateSubscriptionItem(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updateSubscriptionItemEndpoint.Request(nil, opts, id))
}

func (c *Client) DeleteSubscriptionItem(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteSubscriptionItemEndpoint.Request(nil, nil, id))
}

// ListSubscriptionItems lists the items of the subscription of the given ID.
func (c *Client) ListSubscriptionItems(ctx context.Context, subscription string, limit int, opts Params) (*Response, error) {
	return c.send(ctx, listSubscriptionItemsEndpoint.Request(Params{
		"subscription": subscription,
		"limit":        listLimit(limit),
	}, opts))
}
