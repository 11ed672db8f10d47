// Package cache implements the keyed query cache that sits between the UI
// and the resource accessors: fresh hits avoid the network entirely, stale
// hits serve the cached value while revalidating in the background, and a
// per-key fetch sequence guarantees an out-of-order late response can never
// clobber fresher data.
package cache

import (
	"sort"
	"strings"
)

// Key identifies a cached query. Two keys are structurally equal when the
// resource kind and every filter value match; differing filters are
// independent cache entries.
type Key struct {
	Resource string
	Params   string
}

// NewKey builds a Key from a resource kind and filter parameters. Params
// are canonicalized (sorted, empty values dropped) so that equal filters
// always produce equal keys regardless of construction order.
func NewKey(resource string, params map[string]string) Key {
	if len(params) == 0 {
		return Key{Resource: resource}
	}

	pairs := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)

	return Key{Resource: resource, Params: strings.Join(pairs, "&")}
}

// String renders the key for logging and singleflight grouping.
func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}

	return k.Resource + "?" + k.Params
}
