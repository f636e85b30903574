package query

import (
	"fmt"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

// DateField validates that a parameter holds an 8-digit YYYYMMDD date.
type DateField struct {
	Field string
	Label string
}

func (v DateField) Validate(p domain.Params) error {
	s, _ := p[v.Field].(string)
	if len(s) != 8 || !allDigits(s) {
		return fmt.Errorf("%s must be an 8-digit date in YYYYMMDD form", v.Label)
	}
	return nil
}

// RequiredField validates that a parameter is a non-empty string.
type RequiredField struct {
	Field string
	Label string
}

func (v RequiredField) Validate(p domain.Params) error {
	s, _ := p[v.Field].(string)
	if s == "" {
		return fmt.Errorf("%s must not be empty", v.Label)
	}
	return nil
}

// OneOfField validates that a parameter takes one of a fixed set of values.
type OneOfField struct {
	Field   string
	Label   string
	Allowed []string
}

func (v OneOfField) Validate(p domain.Params) error {
	s, _ := p[v.Field].(string)
	for _, a := range v.Allowed {
		if s == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v", v.Label, v.Allowed)
}

// All chains validators; the first rejection wins.
type All []Validator

func (vs All) Validate(p domain.Params) error {
	for _, v := range vs {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
