package stripekit

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Method is the HTTP method used for an Endpoint.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// DefaultLimit is the page size used by list operations when given a limit
// that is not positive.
const DefaultLimit = 10

// Endpoint describes a single operation against the Stripe API. Path is a
// template relative to the versioned API root, with a %s verb for each
// resource ID, and Allowed is the set of optional fields the operation
// accepts. A nil Allowed means the caller's Params are forwarded as-is.
type Endpoint struct {
	Path    string
	Method  Method
	Allowed AllowList
}

// Request is a single call to be sent by the Client. Params are encoded into
// the query string for GET requests, and into the body otherwise. Query is
// always encoded into the query string, whatever the method.
type Request struct {
	Method Method
	Path   string
	Query  Params
	Params Params
}

// URI returns the path of the Request along with its encoded query string,
// if any.
func (r Request) URI() string {
	q := r.Query

	if r.Method == MethodGet {
		q = q.Merge(r.Params)
	}

	if len(q) == 0 {
		return r.Path
	}

	sep := "?"

	if strings.Contains(r.Path, "?") {
		sep = "&"
	}
	return r.Path + sep + q.Encode()
}

// Body returns the encoded body of the Request. GET requests never carry a
// body, and neither does a request with no Params.
func (r Request) Body() string {
	if r.Method == MethodGet || len(r.Params) == 0 {
		return ""
	}
	return r.Params.Encode()
}

func (e Endpoint) path(ids ...string) string {
	if len(ids) == 0 {
		return e.Path
	}

	args := make([]interface{}, 0, len(ids))

	for _, id := range ids {
		args = append(args, url.PathEscape(id))
	}
	return fmt.Sprintf(e.Path, args...)
}

// Request builds a Request for the Endpoint from the required Params and the
// caller's options, filtered through the Endpoint's AllowList. Filtered
// options are applied after the required Params. The given IDs fill in the
// Endpoint's path template.
func (e Endpoint) Request(required, opts Params, ids ...string) Request {
	allowed := opts

	if e.Allowed != nil {
		allowed = e.Allowed.Filter(opts)
	}

	return Request{
		Method: e.Method,
		Path:   e.path(ids...),
		Params: required.Merge(allowed),
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
