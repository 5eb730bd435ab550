package model

import (
	"errors"
	"fmt"
)

// Schema errors
var (
	ErrEmptySchema   = errors.New("model schema has no feature names")
	ErrDuplicateSlot = errors.New("model schema contains a duplicate feature name")
)

// Schema is the ordered list of feature slot names the booster was trained
// against. Scoring is positional: the assembled vector must follow this
// order exactly or predictions are silently wrong, which is why the schema
// travels inside the model artifact instead of being hardcoded here.
type Schema []string

func (s Schema) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchema
	}

	seen := make(map[string]struct{}, len(s))
	for _, name := range s {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSlot, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Index returns the slot position of a feature name, -1 when absent.
func (s Schema) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}
