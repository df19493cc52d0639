package secret

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() string {
	key := make([]byte, keySize)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestBox_SealOpen(t *testing.T) {
	box, err := NewBox(testKey())
	require.NoError(t, err)

	sealed, err := box.Seal(Token("EAAB-token"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "EAAB-token")

	token, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "EAAB-token", token.Reveal())
}

func TestBox_OpenRejectsTamperedPayload(t *testing.T) {
	box, err := NewBox(testKey())
	require.NoError(t, err)

	sealed, err := box.Seal(Token("EAAB-token"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF

	_, err = box.Open(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailure)

	_, err = box.Open([]byte("curto"))
	assert.ErrorIs(t, err, ErrMalformedCipher)
}

func TestNewBox_InvalidKey(t *testing.T) {
	_, err := NewBox(base64.StdEncoding.EncodeToString([]byte("pequena")))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewBox("%%%")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestToken_NeverFormatsValue(t *testing.T) {
	token := Token("EAAB-token")

	assert.Equal(t, redacted, fmt.Sprintf("%v", token))
	assert.Equal(t, redacted, fmt.Sprintf("%s", token))
	assert.Equal(t, redacted, fmt.Sprintf("%#v", token))

	data, err := token.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(data))
}
