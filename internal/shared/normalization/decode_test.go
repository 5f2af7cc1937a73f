package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeCast/internal/modules/coercion/domain"
)

func TestDecodeJSONKeepsNumberKinds(t *testing.T) {
	v, err := DecodeJSON([]byte(`[5, 5.0, "5", true, null, {"@text": "t"}, {"k": 1}]`))
	require.NoError(t, err)
	require.Equal(t, domain.KindSequence, v.Kind())

	kinds := make([]domain.Kind, 0, 7)
	for _, item := range v.Items() {
		kinds = append(kinds, item.Kind())
	}
	assert.Equal(t, []domain.Kind{
		domain.KindInteger,
		domain.KindFloat,
		domain.KindString,
		domain.KindBoolean,
		domain.KindUnsupported,
		domain.KindObject,
		domain.KindUnsupported,
	}, kinds)
}

func TestDecodeJSONErrors(t *testing.T) {
	_, err := DecodeJSON([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeJSON([]byte(`{"a":`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = DecodeJSON([]byte(`1 2`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestDecodeYAML(t *testing.T) {
	v, err := DecodeYAML([]byte("- 1\n- 2\n- 3\n"))
	require.NoError(t, err)
	c, err := domain.Classify(v)
	require.NoError(t, err)
	assert.Equal(t, domain.IntegerContainer, c.Kind())
	assert.Equal(t, 3, c.Len())

	v, err = DecodeYAML([]byte("- 1.5\n- word\n"))
	require.NoError(t, err)
	c, err = domain.Classify(v)
	require.NoError(t, err)
	assert.Equal(t, domain.MixedContainer, c.Kind())

	_, err = DecodeYAML([]byte("a: [1, 2"))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = DecodeYAML(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}
