package domain

// Classify picks the best-fit container for v. A single scalar becomes a
// one-element homogeneous collection. A sequence with one element kind becomes
// a homogeneous collection of that kind and a sequence with several kinds a
// mixed one. Empty sequences, booleans and unsupported values fail.
func Classify(v Value) (Container, error) {
	switch v.Kind() {
	case KindString, KindInteger, KindFloat, KindObject:
		return homogeneous(v.Kind(), []Value{v}, v)
	case KindSequence:
		kinds := make(map[Kind]struct{}, 2)
		for _, item := range v.seq {
			kinds[item.Kind()] = struct{}{}
			if len(kinds) > 1 {
				return NewMixedCollection(v.seq...), nil
			}
		}
		if len(kinds) == 1 {
			return homogeneous(v.seq[0].Kind(), v.seq, v)
		}
		return nil, newFailure(v, TargetCollection.String())
	default:
		return nil, newFailure(v, TargetCollection.String())
	}
}

// homogeneous builds the collection for kind. Kinds without a homogeneous
// container fail against source.
func homogeneous(kind Kind, items []Value, source Value) (Container, error) {
	var (
		c   Container
		err error
	)
	switch kind {
	case KindString:
		c, err = NewStringCollection(items...)
	case KindInteger:
		c, err = NewIntegerCollection(items...)
	case KindFloat:
		c, err = NewFloatCollection(items...)
	case KindObject:
		c, err = NewObjectCollection(items...)
	default:
		return nil, newFailure(source, TargetCollection.String())
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
