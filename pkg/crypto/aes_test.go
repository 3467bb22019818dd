package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestCipher_SealOpen(t *testing.T) {
	c, err := NewCipherFromHex(testKeyHex)
	require.NoError(t, err)
	require.NotNil(t, c)

	sealed, err := c.Seal("I feel anxious about my exam")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedPrefix))
	assert.NotContains(t, sealed, "anxious")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "I feel anxious about my exam", plain)
}

func TestCipher_OpenPlaintextPassthrough(t *testing.T) {
	c, err := NewCipherFromHex(testKeyHex)
	require.NoError(t, err)

	plain, err := c.Open("stored before encryption")
	require.NoError(t, err)
	assert.Equal(t, "stored before encryption", plain)
}

func TestCipher_Nil(t *testing.T) {
	c, err := NewCipherFromHex("")
	require.NoError(t, err)
	assert.Nil(t, c)

	sealed, err := c.Seal("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sealed)
}

func TestKeyFromHex_Invalid(t *testing.T) {
	_, err := KeyFromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = KeyFromHex("zz")
	assert.Error(t, err)
}

func TestCipher_OpenTampered(t *testing.T) {
	c, err := NewCipherFromHex(testKeyHex)
	require.NoError(t, err)

	_, err = c.Open(sealedPrefix + "AAAA")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}
