package idcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := New("test-key")
	require.NoError(t, err)
	return codec
}

func TestRoundTrip(t *testing.T) {
	codec := testCodec(t)

	ids := []uint64{0, 1, 9, 10, 42, 99, 100, 12345, 4294967295, 18446744073709551615}
	for n := uint64(0); n < 2000; n += 7 {
		ids = append(ids, n)
	}

	for _, id := range ids {
		token := codec.Encode(id)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.False(t, strings.HasSuffix(token, "="), token)

		decoded, ok := codec.Decode(token)
		require.True(t, ok, "id %d token %q", id, token)
		assert.Equal(t, id, decoded)
	}
}

func TestEncode42(t *testing.T) {
	codec := testCodec(t)

	token := codec.Encode(42)
	assert.NotEqual(t, "42", token)

	id, ok := codec.Decode(token)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := testCodec(t)

	for _, token := range []string{"not-valid-base64!!", "", "%%%", "a", "====", "aGVsbG8"} {
		id, ok := codec.Decode(token)
		assert.False(t, ok, token)
		assert.Zero(t, id)
	}
}

func TestDecodeWithOtherKey(t *testing.T) {
	token := testCodec(t).Encode(31337)

	other, err := New("another-key")
	require.NoError(t, err)
	id, ok := other.Decode(token)
	if ok {
		assert.NotEqual(t, uint64(31337), id)
	}
}

func TestResolve(t *testing.T) {
	codec := testCodec(t)

	id, err := codec.Resolve(codec.Encode(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	// a single character is never valid base64, so only the decimal fallback applies
	id, err = codec.Resolve("7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	_, err = codec.Resolve("not-valid-base64!!")
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
