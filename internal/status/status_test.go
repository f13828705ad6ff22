package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
)

const (
	selfSecret = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	peerSecret = "8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"
)

func newBroadcaster(t *testing.T) (*Broadcaster, *identity.Identity) {
	t.Helper()
	id, err := identity.FromHex(selfSecret)
	require.NoError(t, err)
	return New(id, nil, nil, false, zap.NewNop()), id
}

func statusData(t *testing.T, signer *identity.Identity, report Report) []byte {
	t.Helper()
	content, err := json.Marshal(report)
	require.NoError(t, err)
	now := time.Now().UnixMilli()
	env := &messaging.Envelope{
		MessageID:   messaging.NewMessageID(signer.Address()),
		FromAgentID: signer.Address(),
		Content:     content,
		Timestamp:   now,
		Nonce:       now,
	}
	require.NoError(t, env.Sign(signer))
	data, err := env.Encode()
	require.NoError(t, err)
	return data
}

func TestHandleStatusStoresVerifiedReport(t *testing.T) {
	b, _ := newBroadcaster(t)
	sender, err := identity.FromHex(peerSecret)
	require.NoError(t, err)

	b.HandleStatus("", statusData(t, sender, Report{
		PeerID:  "peer-2",
		Metrics: Metrics{ConnectedPeers: 3, UptimeSec: 42},
	}))

	reports := b.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, sender.Address(), reports[0].Address)
	assert.Equal(t, "peer-2", reports[0].Report.PeerID)
	assert.Equal(t, 3, reports[0].Report.Metrics.ConnectedPeers)
}

func TestHandleStatusRejectsUnsigned(t *testing.T) {
	b, _ := newBroadcaster(t)
	sender, err := identity.FromHex(peerSecret)
	require.NoError(t, err)

	content, err := json.Marshal(Report{PeerID: "peer-2"})
	require.NoError(t, err)
	env := &messaging.Envelope{
		MessageID:   "m1",
		FromAgentID: sender.Address(),
		Content:     content,
		Timestamp:   time.Now().UnixMilli(),
	}
	data, err := env.Encode()
	require.NoError(t, err)

	b.HandleStatus("", data)
	assert.Empty(t, b.Reports())
}

func TestHandleStatusIgnoresSelf(t *testing.T) {
	b, id := newBroadcaster(t)
	b.HandleStatus("", statusData(t, id, Report{PeerID: "self-peer"}))
	assert.Empty(t, b.Reports())
}

func TestReportsPurgeExpired(t *testing.T) {
	b, _ := newBroadcaster(t)

	b.store("0xold", Report{PeerID: "old"}, time.Now().Add(-3*time.Minute))
	b.store("0xfresh", Report{PeerID: "fresh"}, time.Now())

	reports := b.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "0xfresh", reports[0].Address)

	// The expired entry was dropped, not just hidden.
	b.mu.Lock()
	_, stillThere := b.reports["0xold"]
	b.mu.Unlock()
	assert.False(t, stillThere)
}
