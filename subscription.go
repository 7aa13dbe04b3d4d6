package stripekit

import "context"

var (
	retrieveSubscriptionEndpoint = Endpoint{Path: "subscriptions/%s", Method: MethodGet}
	updateSubscriptionEndpoint   = Endpoint{Path: "subscriptions/%s", Method: MethodPost}
	listSubscriptionsEndpoint    = Endpoint{Path: "subscriptions", Method: MethodGet}

	deleteSubscriptionDiscountEndpoint = Endpoint{Path: "subscriptions/%s/discount", Method: MethodDelete}
)

func (c *Client) RetrieveSubscription(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveSubscriptionEndpoint.Request(nil, nil, id))
}

// UpdateSubscription updates the subscription of the given ID. The given
// Params are sent as they are, without filtering.
func (c *Client) UpdateSubscription(ctx context.Context, id string, params Params) (*Response, error) {
	return c.send(ctx, updateSubscriptionEndpoint.Request(nil, params, id))
}

// ListSubscriptions lists the subscriptions, filtered by the given Params.
// The Params are sent as they are, and no query string is sent if there are
// none.
func (c *Client) ListSubscriptions(ctx context.Context, params Params) (*Response, error) {
	return c.send(ctx, listSubscriptionsEndpoint.Request(nil, params))
}

func (c *Client) DeleteSubscriptionDiscount(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteSubscriptionDiscountEndpoint.Request(nil, nil, id))
}
