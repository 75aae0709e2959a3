package aircoap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	sess := SessionID(0x12345678)

	payload := []byte(`{"state":{"desired":{"pwr":"1","mode":"M","om":"2"}}}`)

	encoded, err := EncodeMessage(sess, append([]byte{}, payload...))
	require.NoError(t, err)

	// the counter travels in clear at the front
	assert.Equal(t, "12345678", string(encoded[:8]))

	decoded, err := DecodeMessage(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestMessageRoundTripBlockAligned(t *testing.T) {
	sess := NewSessionID()

	// exactly one AES block needs no padding at all
	payload := []byte("0123456789abcdef")

	encoded, err := EncodeMessage(sess, append([]byte{}, payload...))
	require.NoError(t, err)

	decoded, err := DecodeMessage(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeMessageTooShort(t *testing.T) {
	_, err := DecodeMessage([]byte("00AABBCC"))
	assert.Error(t, err)
}

func TestEncodeMessageEmpty(t *testing.T) {
	_, err := EncodeMessage(NewSessionID(), nil)
	assert.Error(t, err)
}

func TestParseSessionID(t *testing.T) {
	assert.Equal(t, SessionID(0xDEADBEEF), ParseSessionID([]byte("DEADBEEF")))
	// longer input is truncated to the first 8 chars
	assert.Equal(t, SessionID(0xDEADBEEF), ParseSessionID([]byte("DEADBEEF00")))
	assert.Equal(t, "DEADBEEF", SessionID(0xDEADBEEF).Hex())
}
