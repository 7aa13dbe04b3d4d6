package stripekit

// AllowList is the fixed set of optional field names an operation accepts.
// Keys outside of the AllowList are dropped, not errored, so that unknown or
// newer option keys never break a caller.
type AllowList []string

// Has reports whether the given key is in the AllowList.
func (a AllowList) Has(key string) bool {
	for _, k := range a {
		if k == key {
			return true
		}
	}
	return false
}

// Filter returns a new Params holding only the entries of the given Params
// whose key is in the AllowList. A key counts as present if it exists in the
// map, whatever its value, so zero, false and the empty string are kept.
// Values are passed through untouched, and the given Params is never
// modified. The returned Params is never nil.
func (a AllowList) Filter(opts Params) Params {
	filtered := make(Params)

	for _, k := range a {
		if v, ok := opts[k]; ok {
			filtered[k] = v
		}
	}
	return filtered
}
