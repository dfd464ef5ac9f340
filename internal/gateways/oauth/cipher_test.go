package oauth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCipher_RoundTrip(t *testing.T) {
	cipher, err := NewTokenCipher("super-secret")
	require.NoError(t, err)

	sealed, err := cipher.Seal("discord-access-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "discord-access-token")

	again, err := cipher.Seal("discord-access-token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	opened, err := cipher.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "discord-access-token", opened)
}

func TestTokenCipher_Rejects(t *testing.T) {
	cipher, err := NewTokenCipher("super-secret")
	require.NoError(t, err)
	other, err := NewTokenCipher("another-secret")
	require.NoError(t, err)

	sealed, err := cipher.Seal("token")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name       string
		cipher     *TokenCipher
		ciphertext string
	}{
		{name: "tampered", cipher: cipher, ciphertext: tampered},
		{name: "wrong key", cipher: other, ciphertext: sealed},
		{name: "not base64", cipher: cipher, ciphertext: "%%%"},
		{name: "too short", cipher: cipher, ciphertext: base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cipher.Open(tt.ciphertext)
			assert.ErrorIs(t, err, ErrMalformedCiphertext)
		})
	}
}

func TestNewTokenCipher_EmptySecret(t *testing.T) {
	_, err := NewTokenCipher("")
	assert.Error(t, err)
}

func TestHashCode(t *testing.T) {
	assert.Equal(t, HashCode("abc"), HashCode("abc"))
	assert.NotEqual(t, HashCode("abc"), HashCode("abd"))
	assert.Len(t, HashCode("abc"), 64)
}
