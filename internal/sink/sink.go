// Package sink provides writer-backed result sinks for the CLI. Rendering
// beyond plain JSON/text output is intentionally left to consumers.
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

// JSON writes each delivered payload as an indented JSON document.
type JSON struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (s *JSON) Deliver(payload domain.EnvelopePayload, _ domain.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload.Data); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// Text writes flat object results as sorted key: value lines and falls back
// to compact JSON for anything nested.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (s *Text) Deliver(payload domain.EnvelopePayload, _ domain.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := payload.Data.(map[string]any)
	if !ok {
		return writeCompact(s.w, payload.Data)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := obj[k].(type) {
		case string, float64, bool, nil:
			if _, err := fmt.Fprintf(s.w, "%s: %v\n", k, v); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(s.w, "%s: ", k); err != nil {
				return err
			}
			if err := writeCompact(s.w, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCompact(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
