package stripekit

import "context"

var (
	createCouponEndpoint = Endpoint{
		Path:   "coupons",
		Method: MethodPost,
		Allowed: AllowList{
			"id", "amount_off", "duration_in_months", "max_redemptions", "metadata", "percent_off", "redeem_by",
		},
	}

	retrieveCouponEndpoint = Endpoint{Path: "coupons/%s", Method: MethodGet}

	updateCouponEndpoint = Endpoint{
		Path:    "coupons/%s",
		Method:  MethodPost,
		Allowed: AllowList{"metadata"},
	}

	deleteCouponEndpoint = Endpoint{Path: "coupons/%s", Method: MethodDelete}

	listCouponsEndpoint = Endpoint{
		Path:    "coupons",
		Method:  MethodGet,
		Allowed: AllowList{"created", "ending_before", "starting_after"},
	}
)

// CreateCoupon creates a coupon with the given duration, one of "forever",
// "once", or "repeating". A coupon takes off either a fixed amount or a
// percentage. If amount_off is given in the options, and is not nil, then the
// Client's currency is sent with it, and percent_off is dropped.
func (c *Client) CreateCoupon(ctx context.Context, duration string, opts Params) (*Response, error) {
	r := createCouponEndpoint.Request(Params{"duration": duration}, opts)

	if v, ok := r.Params["amount_off"]; ok && v != nil {
		r.Params["currency"] = c.conf.Currency
		delete(r.Params, "percent_off")
	}
	return c.send(ctx, r)
}

func (c *Client) RetrieveCoupon(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveCouponEndpoint.Request(nil, nil, id))
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, opts Params) (*Response, error) {
	return c.send(ctx, updateCouponEndpoint.Request(nil, opts, id))
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, deleteCouponEndpoint.Request(nil, nil, id))
}

func (c *Client) ListCoupons(ctx context.Context, limit int, opts Params) (*Response, error) {
	return c.send(ctx, listCouponsEndpoint.Request(Params{"limit": listLimit(limit)}, opts))
}
