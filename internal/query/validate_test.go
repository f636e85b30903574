package query

import (
	"testing"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

func TestDateField(t *testing.T) {
	v := DateField{Field: "stat_date", Label: "stat date"}

	tests := []struct {
		value  any
		wantOK bool
	}{
		{"20250101", true},
		{"2025010", false},
		{"202501011", false},
		{"2025010a", false},
		{"", false},
		{nil, false},
		{20250101, false}, // must already be a string
	}

	for _, tt := range tests {
		err := v.Validate(domain.Params{"stat_date": tt.value})
		if (err == nil) != tt.wantOK {
			t.Errorf("DateField(%v): err = %v, wantOK %v", tt.value, err, tt.wantOK)
		}
	}
}

func TestRequiredField(t *testing.T) {
	v := RequiredField{Field: "item", Label: "currency type"}
	if err := v.Validate(domain.Params{"item": "17020000010"}); err != nil {
		t.Errorf("non-empty value rejected: %v", err)
	}
	if err := v.Validate(domain.Params{}); err == nil {
		t.Error("missing value accepted")
	}
}

func TestOneOfField(t *testing.T) {
	v := OneOfField{Field: "mode", Label: "mode", Allowed: []string{"sol", "mp"}}
	if err := v.Validate(domain.Params{"mode": "sol"}); err != nil {
		t.Errorf("allowed value rejected: %v", err)
	}
	if err := v.Validate(domain.Params{"mode": "raid"}); err == nil {
		t.Error("disallowed value accepted")
	}
}

func TestAllStopsAtFirstRejection(t *testing.T) {
	v := All{
		RequiredField{Field: "a", Label: "a"},
		RequiredField{Field: "b", Label: "b"},
	}
	if err := v.Validate(domain.Params{"a": "x", "b": "y"}); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	err := v.Validate(domain.Params{"b": "y"})
	if err == nil {
		t.Fatal("invalid params accepted")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	d := testDescriptor("currency", &fakeSink{}, nil)
	if err := r.Register(d); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(d); err == nil {
		t.Error("duplicate registration accepted")
	}
	if err := r.Register(Descriptor{Name: "broken"}); err == nil {
		t.Error("incomplete descriptor accepted")
	}

	if _, ok := r.Get("currency"); !ok {
		t.Error("registered descriptor not found")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("unknown descriptor found")
	}
	if names := r.Names(); len(names) != 1 || names[0] != "currency" {
		t.Errorf("Names = %v", names)
	}
}
