package domain

// Target names the type a coercion produces.
type Target string

const (
	TargetString     Target = "string"
	TargetFloat      Target = "float"
	TargetInteger    Target = "integer"
	TargetBoolean    Target = "boolean"
	TargetCollection Target = "collection"
)

// Targets lists every canonical target in a stable order.
func Targets() []Target {
	return []Target{TargetString, TargetFloat, TargetInteger, TargetBoolean, TargetCollection}
}

func (t Target) String() string { return string(t) }
