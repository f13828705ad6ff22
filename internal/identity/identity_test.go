package identity_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/internal/identity"
)

const (
	testSecretA = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testSecretB = "8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"
)

func TestAddressDerivation(t *testing.T) {
	id, err := identity.FromHex(testSecretA)
	require.NoError(t, err)

	// Deterministic, lowercase, 20-byte hex with 0x prefix.
	assert.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]{40}$`), id.Address())

	again, err := identity.FromHex("0x" + testSecretA)
	require.NoError(t, err)
	assert.Equal(t, id.Address(), again.Address())

	other, err := identity.FromHex(testSecretB)
	require.NoError(t, err)
	assert.NotEqual(t, id.Address(), other.Address())
}

func TestPublicKeyShape(t *testing.T) {
	id, err := identity.FromHex(testSecretA)
	require.NoError(t, err)

	pub := id.PublicKeyBytes()
	require.Len(t, pub, 65)
	assert.EqualValues(t, 0x04, pub[0]) // uncompressed point marker
	assert.Len(t, id.PublicKeyHex(), 130)
}

func TestBadSecrets(t *testing.T) {
	_, err := identity.FromHex("not-hex")
	assert.Error(t, err)

	_, err = identity.FromHex("abcd")
	assert.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	id, err := identity.FromHex(testSecretA)
	require.NoError(t, err)

	msg := []byte(`{"messageId":"m1","content":"hello"}`)
	sig, err := id.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.GreaterOrEqual(t, sig[64], byte(27))

	assert.True(t, identity.Verify(id.Address(), msg, sig))
	// Case-insensitive address comparison.
	assert.True(t, identity.Verify("0X"+id.Address()[2:], msg, sig))
}

func TestVerifyRejectsTampering(t *testing.T) {
	id, err := identity.FromHex(testSecretA)
	require.NoError(t, err)
	other, err := identity.FromHex(testSecretB)
	require.NoError(t, err)

	msg := []byte("payload")
	sig, err := id.Sign(msg)
	require.NoError(t, err)

	// Wrong claimed address.
	assert.False(t, identity.Verify(other.Address(), msg, sig))

	// Tampered message.
	assert.False(t, identity.Verify(id.Address(), []byte("Payload"), sig))

	// Tampered signature.
	flipped := make([]byte, len(sig))
	copy(flipped, sig)
	flipped[0] ^= 0xff
	assert.False(t, identity.Verify(id.Address(), msg, flipped))

	// Truncated signature.
	assert.False(t, identity.Verify(id.Address(), msg, sig[:64]))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	id, err := identity.FromHex(testSecretA)
	require.NoError(t, err)

	plaintext := []byte("secret payload")
	ciphertext, err := identity.Encrypt(id.PublicKeyBytes(), plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := id.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptNotForMe(t *testing.T) {
	a, err := identity.FromHex(testSecretA)
	require.NoError(t, err)
	b, err := identity.FromHex(testSecretB)
	require.NoError(t, err)

	ciphertext, err := identity.Encrypt(a.PublicKeyBytes(), []byte("for a only"))
	require.NoError(t, err)

	_, err = b.Decrypt(ciphertext)
	assert.ErrorIs(t, err, identity.ErrNotForMe)

	// Plaintext bytes are not a valid ciphertext either.
	_, err = a.Decrypt([]byte("just some text"))
	assert.ErrorIs(t, err, identity.ErrNotForMe)
}
