package domain

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Params is a flat wire-parameter mapping. Values are scalars only
// (string, int, or float); nested structures are pre-encoded by builders.
type Params map[string]any

// Validate rejects parameter values that are not plain scalars.
func (p Params) Validate() error {
	for k, v := range p {
		switch v.(type) {
		case string, int, int64, float64:
		default:
			return fmt.Errorf("param %q has non-scalar type %T", k, v)
		}
	}
	return nil
}

// Clone returns a shallow copy so descriptors can hand params across
// stages without sharing mutable state.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Encode renders the mapping as a sorted, escaped URL-style query string.
// Sorting makes the encoding order-independent; escaping keys and values
// keeps the serialization unambiguous when a value itself contains & or =.
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(p[k])))
	}
	return b.String()
}

// CacheKey identifies a request by host plus its parameter fingerprint.
type CacheKey string

// RequestSpec describes one outbound request. Built fresh per query
// invocation and never mutated after construction.
type RequestSpec struct {
	Host       string
	Path       string
	Params     Params
	Headers    map[string]string
	Timeout    time.Duration
	MaxRetries int
}

// Fingerprint derives the cache key for this spec. Two specs with the same
// host and the same key/value pairs collide regardless of insertion order.
func (s RequestSpec) Fingerprint() CacheKey {
	h := fnv.New64a()
	h.Write([]byte(s.Host))
	h.Write([]byte{0})
	h.Write([]byte(s.Params.Encode()))
	return CacheKey(fmt.Sprintf("%s:%x", s.Host, h.Sum64()))
}
