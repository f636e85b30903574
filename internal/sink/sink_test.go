package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

func TestJSONSink(t *testing.T) {
	var buf strings.Builder
	s := NewJSON(&buf)

	payload := domain.PayloadOK(map[string]any{"totalMoney": "12345"}, "")
	if err := s.Deliver(payload, nil); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output not JSON: %v", err)
	}
	if decoded["totalMoney"] != "12345" {
		t.Errorf("output = %v", decoded)
	}
}

func TestTextSinkFlatObject(t *testing.T) {
	var buf strings.Builder
	s := NewText(&buf)

	payload := domain.PayloadOK(map[string]any{
		"secret": "0420",
		"day":    "20250101",
	}, "")
	if err := s.Deliver(payload, nil); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	out := buf.String()
	// Keys are emitted sorted.
	if !strings.Contains(out, "day: 20250101\n") || !strings.Contains(out, "secret: 0420\n") {
		t.Errorf("output = %q", out)
	}
	if strings.Index(out, "day:") > strings.Index(out, "secret:") {
		t.Errorf("keys not sorted: %q", out)
	}
}

func TestTextSinkNestedFallsBackToJSON(t *testing.T) {
	var buf strings.Builder
	s := NewText(&buf)

	payload := domain.PayloadOK([]any{map[string]any{"day": "20250101"}}, "")
	if err := s.Deliver(payload, nil); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if !strings.Contains(buf.String(), `[{"day":"20250101"}]`) {
		t.Errorf("output = %q", buf.String())
	}
}
