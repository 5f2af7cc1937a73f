package domain

import (
	"encoding/json"
	"fmt"
)

// ContainerKind tags what a Container holds.
type ContainerKind string

const (
	StringContainer  ContainerKind = "string"
	IntegerContainer ContainerKind = "integer"
	FloatContainer   ContainerKind = "float"
	ObjectContainer  ContainerKind = "object"
	MixedContainer   ContainerKind = "mixed"
)

// Container is an ordered collection produced by Classify.
type Container interface {
	Kind() ContainerKind
	Len() int
	Values() []Value
}

// Collection is an ordered sequence of T. Homogeneous collections verify the
// kind of every element when they are built and never again.
type Collection[T any] struct {
	kind  ContainerKind
	items []T
	wrap  func(T) Value
}

func (c *Collection[T]) Kind() ContainerKind { return c.kind }

func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the typed elements.
func (c *Collection[T]) Items() []T { return append([]T(nil), c.items...) }

func (c *Collection[T]) Values() []Value {
	values := make([]Value, len(c.items))
	for i, item := range c.items {
		values[i] = c.wrap(item)
	}
	return values
}

func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   ContainerKind `json:"kind"`
		Length int           `json:"length"`
		Items  []Value       `json:"items"`
	}{Kind: c.kind, Length: len(c.items), Items: c.Values()})
}

func NewStringCollection(values ...Value) (*Collection[string], error) {
	return newCollection(StringContainer, KindString, values, func(v Value) string { return v.str }, StringValue)
}

func NewIntegerCollection(values ...Value) (*Collection[int64], error) {
	return newCollection(IntegerContainer, KindInteger, values, func(v Value) int64 { return v.num }, IntegerValue)
}

func NewFloatCollection(values ...Value) (*Collection[float64], error) {
	return newCollection(FloatContainer, KindFloat, values, func(v Value) float64 { return v.flt }, FloatValue)
}

func NewObjectCollection(values ...Value) (*Collection[fmt.Stringer], error) {
	return newCollection(ObjectContainer, KindObject, values, func(v Value) fmt.Stringer { return v.obj }, ObjectValue)
}

// NewMixedCollection accepts values of any kind.
func NewMixedCollection(values ...Value) *Collection[Value] {
	return &Collection[Value]{
		kind:  MixedContainer,
		items: append([]Value(nil), values...),
		wrap:  func(v Value) Value { return v },
	}
}

func newCollection[T any](kind ContainerKind, elem Kind, values []Value, extract func(Value) T, wrap func(T) Value) (*Collection[T], error) {
	items := make([]T, 0, len(values))
	for _, v := range values {
		if v.Kind() != elem {
			return nil, newFailure(v, "collection("+string(kind)+")")
		}
		items = append(items, extract(v))
	}
	return &Collection[T]{kind: kind, items: items, wrap: wrap}, nil
}
