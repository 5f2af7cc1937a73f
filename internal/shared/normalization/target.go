package normalization

import (
	"errors"
	"fmt"
	"strings"

	"safeCast/internal/modules/coercion/domain"
)

// ErrUnknownTarget is returned for target names without a canonical form.
var ErrUnknownTarget = errors.New("unknown target")

// targetAliases maps accepted spellings to their canonical target.
var targetAliases = map[string]domain.Target{
	// Strings
	"string": domain.TargetString,
	"str":    domain.TargetString,
	"text":   domain.TargetString,

	// Floats
	"float":   domain.TargetFloat,
	"float64": domain.TargetFloat,
	"double":  domain.TargetFloat,
	"number":  domain.TargetFloat,

	// Integers
	"integer": domain.TargetInteger,
	"int":     domain.TargetInteger,
	"int64":   domain.TargetInteger,

	// Booleans
	"boolean": domain.TargetBoolean,
	"bool":    domain.TargetBoolean,

	// Collections
	"collection": domain.TargetCollection,
	"list":       domain.TargetCollection,
	"array":      domain.TargetCollection,
}

// ParseTarget converts various target spellings to their canonical form.
//
// Example:
//
//	ParseTarget(" INT ") => domain.TargetInteger
//	ParseTarget("double") => domain.TargetFloat
func ParseTarget(raw string) (domain.Target, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if target, ok := targetAliases[key]; ok {
		return target, nil
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownTarget)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, raw)
}

// IsCollectionTarget reports whether raw names the classification target.
func IsCollectionTarget(raw string) bool {
	target, err := ParseTarget(raw)
	return err == nil && target == domain.TargetCollection
}
