package domain

import (
	"errors"
	"fmt"
)

// ErrCoercion matches every *CoercionFailure through errors.Is.
var ErrCoercion = errors.New("coercion failed")

// CoercionFailure is the single failure shape of the engine and the classifier.
type CoercionFailure struct {
	SourceKind      string `json:"sourceKind"`
	SourceRendering string `json:"sourceRendering"`
	TargetType      string `json:"targetType"`
}

func (f *CoercionFailure) Error() string {
	return fmt.Sprintf("cannot coerce %s %s to %s", f.SourceKind, f.SourceRendering, f.TargetType)
}

func (f *CoercionFailure) Is(target error) bool {
	return target == ErrCoercion
}

// AsFailure unwraps err into a *CoercionFailure when it carries one.
func AsFailure(err error) (*CoercionFailure, bool) {
	var failure *CoercionFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

func newFailure(v Value, target string) *CoercionFailure {
	return &CoercionFailure{
		SourceKind:      v.Kind().String(),
		SourceRendering: v.Render(),
		TargetType:      target,
	}
}
