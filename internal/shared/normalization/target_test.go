package normalization

import (
	"errors"
	"testing"

	"safeCast/internal/modules/coercion/domain"
)

func TestParseTarget(t *testing.T) {
	cases := map[string]domain.Target{
		"string":     domain.TargetString,
		" STR ":      domain.TargetString,
		"float":      domain.TargetFloat,
		"Double":     domain.TargetFloat,
		"integer":    domain.TargetInteger,
		"int":        domain.TargetInteger,
		"bool":       domain.TargetBoolean,
		"Boolean":    domain.TargetBoolean,
		"collection": domain.TargetCollection,
		"list":       domain.TargetCollection,
	}

	for input, expected := range cases {
		actual, err := ParseTarget(input)
		if err != nil {
			t.Fatalf("ParseTarget(%q) unexpected error: %v", input, err)
		}
		if actual != expected {
			t.Fatalf("ParseTarget(%q) expected %q got %q", input, expected, actual)
		}
	}
}

func TestParseTargetRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "  ", "decimal", "object"} {
		if _, err := ParseTarget(input); !errors.Is(err, ErrUnknownTarget) {
			t.Fatalf("ParseTarget(%q) expected ErrUnknownTarget, got %v", input, err)
		}
	}
}

func TestIsCollectionTarget(t *testing.T) {
	if !IsCollectionTarget("Array") {
		t.Fatal("expected array to be a collection target")
	}
	if IsCollectionTarget("int") {
		t.Fatal("expected int not to be a collection target")
	}
}
