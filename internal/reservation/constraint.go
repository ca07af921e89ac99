// Package reservation assembles typed resource-reservation requests into the
// payload the scheduling service expects. Builders are pure and fail fast on
// contradictory parameters; only the floating-IP builder performs a remote
// lookup.
package reservation

import (
	"encoding/json"
	"fmt"
)

// Constraint is one node in the scheduler's constraint expression tree. A
// leaf is [operator, key, value]; compound expressions are ["and", expr...].
type Constraint []any

// Eq builds an equality leaf. Keys use the scheduler's "$field" form.
func Eq(key, value string) Constraint {
	return Constraint{"==", key, value}
}

// And combines constraints under a logical AND.
func And(constraints ...Constraint) Constraint {
	expr := Constraint{"and"}
	for _, c := range constraints {
		expr = append(expr, c)
	}
	return expr
}

// Encode serializes the constraint to the JSON string the scheduler expects
// inside resource_properties. A nil constraint encodes to the empty string.
func (c Constraint) Encode() (string, error) {
	if c == nil {
		return "", nil
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode constraint: %w", err)
	}
	return string(buf), nil
}

// combine merges a user-supplied constraint with derived constraints under
// AND. A single resulting constraint is used directly, without a redundant
// "and" wrapper; the scheduler treats the two encodings differently.
func combine(user Constraint, derived ...Constraint) Constraint {
	all := make([]Constraint, 0, len(derived)+1)
	if user != nil {
		all = append(all, user)
	}
	for _, d := range derived {
		if d != nil {
			all = append(all, d)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return And(all...)
	}
}
