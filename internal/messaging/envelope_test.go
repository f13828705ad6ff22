package messaging_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
)

const (
	senderSecret    = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	recipientSecret = "8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"
)

func signedEnvelope(t *testing.T, id *identity.Identity, to string, content []byte) *messaging.Envelope {
	t.Helper()
	now := time.Now().UnixMilli()
	env := &messaging.Envelope{
		MessageID:   messaging.NewMessageID(id.Address()),
		FromAgentID: id.Address(),
		ToAgentID:   to,
		Content:     content,
		Timestamp:   now,
		Nonce:       now,
	}
	require.NoError(t, env.Sign(id))
	return env
}

func TestSignVerifyRoundTrip(t *testing.T) {
	id, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, id, "0xabc", []byte("hello"))
	assert.NotEmpty(t, env.Signature)
	assert.True(t, env.VerifySignature())
}

func TestSignatureExcludedFromCanonicalForm(t *testing.T) {
	id, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, id, "0xabc", []byte("hello"))
	unsigned, err := env.SigningBytes()
	require.NoError(t, err)
	assert.NotContains(t, string(unsigned), "signature")
}

func TestVerifyRejectsTamperedEnvelope(t *testing.T) {
	id, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, id, "0xabc", []byte("hello"))

	tampered := *env
	tampered.Content = []byte("HELLO")
	assert.False(t, tampered.VerifySignature())

	sigBytes, err := hex.DecodeString(env.Signature)
	require.NoError(t, err)
	sigBytes[0] ^= 0x01
	badSig := *env
	badSig.Signature = hex.EncodeToString(sigBytes)
	assert.False(t, badSig.VerifySignature())
}

func TestVerifyRejectsSpoofedSender(t *testing.T) {
	sender, err := identity.FromHex(senderSecret)
	require.NoError(t, err)
	other, err := identity.FromHex(recipientSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, sender, "0xabc", []byte("hello"))
	env.FromAgentID = other.Address()
	assert.False(t, env.VerifySignature())
}

func TestAddressedTo(t *testing.T) {
	env := &messaging.Envelope{ToAgentID: "0xAbCd"}
	assert.True(t, env.AddressedTo("0xabcd"))
	assert.True(t, env.AddressedTo("0xABCD"))
	assert.False(t, env.AddressedTo("0xother"))

	// Absent recipient is broadcast intent.
	broadcast := &messaging.Envelope{}
	assert.True(t, broadcast.AddressedTo("0xanyone"))
}

func TestEncodeDecodeWrapper(t *testing.T) {
	id, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, id, "0xabc", []byte("hello"))
	data, err := env.Encode()
	require.NoError(t, err)

	var outer map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &outer))
	require.Contains(t, outer, "message")

	decoded, err := messaging.DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env.MessageID, decoded.MessageID)
	assert.True(t, decoded.VerifySignature())
}

func TestDecodeRejectsMissingMessageField(t *testing.T) {
	_, err := messaging.DecodeEnvelope([]byte(`{"something":"else"}`))
	assert.Error(t, err)

	_, err = messaging.DecodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}
