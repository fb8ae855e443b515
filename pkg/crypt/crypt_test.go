package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/pkg/crypt"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	ciphertext, err := crypt.Encrypt("bearer-token-value")
	require.NoError(t, err)
	assert.NotEqual(t, "bearer-token-value", ciphertext)

	plaintext, err := crypt.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", plaintext)
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	a, err := crypt.Encrypt("same input")
	require.NoError(t, err)
	b, err := crypt.Encrypt("same input")
	require.NoError(t, err)

	// Fresh nonce per call: identical plaintexts must not share ciphertext.
	assert.NotEqual(t, a, b)
}

func TestDecrypt_Tampered(t *testing.T) {
	ciphertext, err := crypt.Encrypt("session payload")
	require.NoError(t, err)

	flip := byte('A')
	if ciphertext[0] == flip {
		flip = 'B'
	}
	tampered := string(flip) + ciphertext[1:]
	_, err = crypt.Decrypt(tampered)
	assert.ErrorIs(t, err, crypt.ErrDecrypt)
}

func TestJSON_RoundTrip(t *testing.T) {
	in := map[string]interface{}{"token": "abc", "user": "u1"}

	encoded, err := crypt.EncryptJSON(in)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, crypt.DecryptJSON(encoded, &out))
	assert.Equal(t, "abc", out["token"])
	assert.Equal(t, "u1", out["user"])
}
