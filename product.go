package stripekit

import "context"

var (
	createServiceProductEndpoint = Endpoint{
		Path:    "products",
		Method:  MethodPost,
		Allowed: AllowList{"id", "attributes", "metadata", "statement_descriptor", "unit_label"},
	}

	createProductEndpoint = Endpoint{
		Path:   "products",
		Method: MethodPost,
		Allowed: AllowList{
			"id", "description", "caption", "active", "shippable", "attributes", "metadata",
			"package_dimensions", "images", "url", "deactivate_on",
		},
	}

	retrieveProductEndpoint = Endpoint{Path: "products/%s", Method: MethodGet}
)

// CreateServiceProduct creates a product of type service, which plans can
// be created for.
func (c *Client) CreateServiceProduct(ctx context.Context, name string, opts Params) (*Response, error) {
	return c.send(ctx, createServiceProductEndpoint.Request(Params{
		"name": name,
		"type": "service",
	}, opts))
}

// CreateProduct creates a product of type good, which SKUs can be created
// for.
func (c *Client) CreateProduct(ctx context.Context, name string, opts Params) (*Response, error) {
	return c.send(ctx, createProductEndpoint.Request(Params{
		"name": name,
		"type": "good",
	}, opts))
}

func (c *Client) RetrieveProduct(ctx context.Context, id string) (*Response, error) {
	return c.send(ctx, retrieveProductEndpoint.Request(nil, nil, id))
}
