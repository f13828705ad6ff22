package messaging_test

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/events"
	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
)

type failingResolver struct{}

func (failingResolver) Lookup(ctx context.Context, address string) (string, error) {
	return "", errors.New("unknown agent")
}

func newReceiver(t *testing.T, secret string) (*messaging.Service, *identity.Identity, <-chan events.Event) {
	t.Helper()
	id, err := identity.FromHex(secret)
	require.NoError(t, err)
	bus := events.NewBus()
	ch, cancel := bus.Subscribe()
	t.Cleanup(cancel)
	svc := messaging.New(id, nil, failingResolver{}, nil, bus, false, zap.NewNop())
	return svc, id, ch
}

func deliveries(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPlaintextDelivery(t *testing.T) {
	svc, recipient, ch := newReceiver(t, recipientSecret)
	sender, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, sender, recipient.Address(), []byte("hello"))
	data, err := env.Encode()
	require.NoError(t, err)

	svc.HandleMessage("", data)

	got := deliveries(ch)
	require.Len(t, got, 1)
	assert.Equal(t, events.KindMessage, got[0].Kind)
	assert.Equal(t, sender.Address(), got[0].Msg.From)
	assert.Equal(t, []byte("hello"), got[0].Msg.Content)
	assert.Equal(t, int64(1), svc.Received())
}

func TestEncryptedDelivery(t *testing.T) {
	svc, recipient, ch := newReceiver(t, recipientSecret)
	sender, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	ciphertext, err := identity.Encrypt(recipient.PublicKeyBytes(), []byte("hello"))
	require.NoError(t, err)
	env := signedEnvelope(t, sender, recipient.Address(), ciphertext)
	data, err := env.Encode()
	require.NoError(t, err)

	// The wire bytes must not contain the plaintext.
	assert.NotContains(t, string(data), "hello")

	svc.HandleMessage("", data)

	got := deliveries(ch)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("hello"), got[0].Msg.Content)
}

func TestRecipientFilterDropsSilently(t *testing.T) {
	svc, _, ch := newReceiver(t, recipientSecret)
	sender, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, sender, "0x1111111111111111111111111111111111111111", []byte("hi"))
	data, err := env.Encode()
	require.NoError(t, err)

	svc.HandleMessage("", data)

	assert.Empty(t, deliveries(ch))
	assert.Equal(t, int64(0), svc.Received())
	// A wrong recipient is not a protocol violation.
	assert.Equal(t, int64(0), svc.Dropped())
}

func TestTamperedSignatureDropped(t *testing.T) {
	svc, recipient, ch := newReceiver(t, recipientSecret)
	sender, err := identity.FromHex(senderSecret)
	require.NoError(t, err)

	env := signedEnvelope(t, sender, recipient.Address(), []byte("hello"))
	sigBytes, err := hex.DecodeString(env.Signature)
	require.NoError(t, err)
	sigBytes[0] ^= 0x01
	env.Signature = hex.EncodeToString(sigBytes)
	data, err := env.Encode()
	require.NoError(t, err)

	svc.HandleMessage("", data)

	assert.Empty(t, deliveries(ch))
	assert.Equal(t, int64(1), svc.Dropped())
}

func TestMalformedWrapperDropped(t *testing.T) {
	svc, _, ch := newReceiver(t, recipientSecret)
	svc.HandleMessage("", []byte(`{"no":"message"}`))
	assert.Empty(t, deliveries(ch))
	assert.Equal(t, int64(1), svc.Dropped())
}

func TestSendNoRoute(t *testing.T) {
	svc, _, _ := newReceiver(t, senderSecret)
	_, err := svc.Send(context.Background(), "0x2222222222222222222222222222222222222222", []byte("x"), "", "")
	assert.ErrorIs(t, err, messaging.ErrNoRoute)
}
