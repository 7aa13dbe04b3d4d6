package stripekit

import "context"

var (
	createPlanEndpoint = Endpoint{
		Path:   "plans",
		Method: MethodPost,
		Allowed: AllowList{
			"id", "amount", "interval_count", "metadata", "nickname", "billing_scheme",
			"tiers", "tiers_mode", "transform_usage", "usage_type",
		},
	}

	retrievePlanEndpoint = Endpoint{Path: "plans/%s", Method: MethodGet}

	updatePlanEndpoint = Endpoint{
		Path:    "plans/%s",
		Method:  MethodPost,
		Allowed: AllowList{"metadata", "nickname", "product"},
	}

	deletePlanEndpoint = Endpoint{Path: "plans/%s", Method: MethodDelete}

	listPlansEndpoint = Endpoint{
		Path:    "plans",
		Method:  MethodGet,
		Allowed: AllowList{"created", "ending_before", "starting_after", "product"},
	}
)

// CreatePlan creates a plan billed at the given interval, one of "day",
// "week", "month", or "year", for the product of the given ID.
func (c *Client) CreatePlan(ctx context.Context, interval, product string, opts Params) (*Response, error) {
	return c.send(ctx, createPlanEndpoint.Request(Params{
		"currency": c.conf.Currency,
		"interval": interval,
		"product":  product,
	}, opts))
}

func (c *Client) RetrievePlan(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrievePlanEndpoint.Request(nil, nil, id))
}

func (c *Client) UpdatePlan(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updatePlanEndpoint.Request(nil, opts, id))
}

func (c *Client) DeletePlan(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deletePlanEndpoint.Request(nil, nil, id))
}

func (c *Client) ListPlans(ctx context.Context, limit, offset int, opts Params) (*Response, error) {
	return c.send(ctx, listPlansEndpoint.Request(Params{
		"limit":  listLimit(limit),
		"offset": offset,
	}, opts))
}
