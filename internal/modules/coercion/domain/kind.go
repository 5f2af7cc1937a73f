package domain

// Kind is the runtime kind of a Value. The set is closed.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindObject
	KindSequence
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindString:      "string",
	KindInteger:     "integer",
	KindFloat:       "float",
	KindBoolean:     "boolean",
	KindObject:      "object",
	KindSequence:    "sequence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnsupported]
}
