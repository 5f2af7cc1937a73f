package domain

import "encoding/json"

// CoerceCommand is the wire form of a single request. Value stays raw so the
// caller can decode it with number fidelity.
type CoerceCommand struct {
	RequestID string          `json:"requestId,omitempty"`
	Target    string          `json:"target"`
	Value     json.RawMessage `json:"value"`
}

// BatchCommand carries several requests evaluated together.
type BatchCommand struct {
	Items []CoerceCommand `json:"items"`
}

// Result is the wire form of an outcome. Exactly one of Value, Collection,
// Failure and Error is set. Error holds request problems that are not
// coercion failures, such as an unknown target.
type Result struct {
	RequestID  string           `json:"requestId,omitempty"`
	Target     Target           `json:"target"`
	Value      *Value           `json:"value,omitempty"`
	Collection Container        `json:"collection,omitempty"`
	Failure    *CoercionFailure `json:"failure,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Succeeded reports whether the result carries a value or a collection.
func (r Result) Succeeded() bool {
	return r.Failure == nil && r.Error == ""
}
