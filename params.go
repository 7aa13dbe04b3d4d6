package stripekit

import (
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Params is used for defining the parameters that are sent to the Stripe API,
// either in the query string of a GET request, or in the body of a POST or
// DELETE request. This will be encoded into a valid x-www-form-urlencoded
// payload, where nested maps and slices use the bracket convention Stripe
// expects, for example,
//
//	Params{
//	    "metadata": Params{"order": "42"},
//	    "expand":   []string{"customer"},
//	}
//
// would be encoded to,
//
//	expand[0]=customer&metadata[order]=42
type Params map[string]interface{}

type pair struct {
	key   string
	value string
}

func (p pair) encode() string { return p.key + "=" + url.QueryEscape(p.value) }

// sortedKeys returns the keys of the given map value in ascending order. Go
// maps carry no insertion order, so sorting is what keeps the encoding
// deterministic.
func sortedKeys(val reflect.Value) []string {
	keys := make([]string, 0, val.Len())

	for _, k := range val.MapKeys() {
		keys = append(keys, fmt.Sprintf("%v", k.Interface()))
	}
	sort.Strings(keys)
	return keys
}

func scalar(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", v)
}

// encodeValue flattens the given value into pairs under the given key.
// Maps recurse as key[sub], slices and arrays as key[i]. Nil values, and nil
// pointers, are skipped, which is how a caller explicitly leaves a field out.
func encodeValue(key string, v interface{}) []pair {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)

	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			break
		}

		pairs := make([]pair, 0, val.Len())

		for _, k := range sortedKeys(val) {
			sub := val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key()))
			pairs = append(pairs, encodeValue(key+"["+url.QueryEscape(k)+"]", sub.Interface())...)
		}
		return pairs
	case reflect.Slice, reflect.Array:
		// []byte is treated as a string, not as a list of numbers.
		if val.Kind() == reflect.Slice && val.Type().Elem().Kind() == reflect.Uint8 {
			return []pair{{key: key, value: string(val.Bytes())}}
		}

		pairs := make([]pair, 0, val.Len())

		for i := 0; i < val.Len(); i++ {
			k := key + "[" + strconv.FormatInt(int64(i), 10) + "]"
			pairs = append(pairs, encodeValue(k, val.Index(i).Interface())...)
		}
		return pairs
	}
	return []pair{{key: key, value: scalar(val.Interface())}}
}

func (p Params) encodeToPairs() []pair {
	pairs := make([]pair, 0, len(p))

	for _, k := range p.Keys() {
		pairs = append(pairs, encodeValue(url.QueryEscape(k), p[k])...)
	}
	return pairs
}

// Keys returns the keys of the current Params in ascending order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))

	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode encodes the current Params into an x-www-form-urlencoded string and
// returns it. Keys are sorted at every level of nesting, and slice elements
// keep their index order.
func (p Params) Encode() string {
	pairs := p.encodeToPairs()
	parts := make([]string, 0, len(pairs))

	for _, pair := range pairs {
		parts = append(parts, pair.encode())
	}
	return strings.Join(parts, "&")
}

// Reader returns an io.Reader for the x-www-form-urlencoded string of the
// current Params.
func (p Params) Reader() io.Reader { return strings.NewReader(p.Encode()) }

// Merge returns a new Params containing the entries of the current Params
// followed by the entries of each of the given Params. Later entries
// overwrite earlier ones with the same key. Neither the receiver nor the
// arguments are modified.
func (p Params) Merge(pp ...Params) Params {
	merged := make(Params, len(p))

	for k, v := range p {
		merged[k] = v
	}

	for _, p1 := range pp {
		for k, v := range p1 {
			merged[k] = v
		}
	}
	return merged
}
