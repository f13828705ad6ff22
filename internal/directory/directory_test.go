package directory_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/directory"
	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
	"github.com/agentmesh/agentmesh/internal/policy"
)

const (
	selfSecret = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	peerSecret = "8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f"
)

// lightPolicy disables the DHT so lookups stay local in tests.
func lightPolicy() policy.RoleConfig {
	return policy.ConfigForRole(policy.RoleLight)
}

func newDirectory(t *testing.T) (*directory.Directory, *identity.Identity) {
	t.Helper()
	id, err := identity.FromHex(selfSecret)
	require.NoError(t, err)
	return directory.New(id, "self", nil, lightPolicy(), nil, zap.NewNop()), id
}

func TestBindNormalizesAndResolves(t *testing.T) {
	dir, _ := newDirectory(t)

	dir.Bind("0xAABBccDDeeFF00112233445566778899aabbCCdd", "peer-1", "alice", []string{"/ip4/127.0.0.1/tcp/4001"})

	peerID, err := dir.Lookup(context.Background(), "0xAABBCCDDEEFF00112233445566778899AABBCCDD")
	require.NoError(t, err)
	assert.Equal(t, "peer-1", peerID)

	addr, ok := dir.Resolve("peer-1")
	require.True(t, ok)
	assert.Equal(t, "0xaabbccddeeff00112233445566778899aabbccdd", addr)
}

func TestSelfNeverStored(t *testing.T) {
	dir, id := newDirectory(t)

	dir.Bind(id.Address(), "peer-self", "me", nil)

	_, err := dir.Lookup(context.Background(), id.Address())
	assert.ErrorIs(t, err, directory.ErrNotFound)
	assert.Empty(t, dir.Snapshot())
}

func TestBindConflictCorrected(t *testing.T) {
	dir, _ := newDirectory(t)

	dir.Bind("0x1111111111111111111111111111111111111111", "peer-old", "", nil)
	dir.Bind("0x1111111111111111111111111111111111111111", "peer-new", "", nil)

	peerID, err := dir.Lookup(context.Background(), "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "peer-new", peerID)

	// The stale reverse mapping is gone.
	_, ok := dir.Resolve("peer-old")
	assert.False(t, ok)
}

func TestLookupUnknownFails(t *testing.T) {
	dir, _ := newDirectory(t)
	_, err := dir.Lookup(context.Background(), "0x2222222222222222222222222222222222222222")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func announcementData(t *testing.T, signer *identity.Identity, ann directory.Announcement) []byte {
	t.Helper()
	content, err := json.Marshal(ann)
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

func TestVerifiedAnnouncementApplied(t *testing.T) {
	dir, _ := newDirectory(t)
	peerIdentity, err := identity.FromHex(peerSecret)
	require.NoError(t, err)

	dir.HandleAnnouncement("", announcementData(t, peerIdentity, directory.Announcement{
		PeerID:     "peer-2",
		Address:    peerIdentity.Address(),
		Name:       "bob",
		Multiaddrs: []string{"/ip4/10.0.0.2/tcp/4001"},
		Timestamp:  time.Now().UnixMilli(),
	}))

	snap := dir.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, peerIdentity.Address(), snap[0].Address)
	assert.Equal(t, "peer-2", snap[0].PeerID)
	assert.Equal(t, "bob", snap[0].Name)
	assert.NotEmpty(t, snap[0].Multiaddrs)
}

func TestAnnouncementForOtherAddressRejected(t *testing.T) {
	dir, _ := newDirectory(t)
	peerIdentity, err := identity.FromHex(peerSecret)
	require.NoError(t, err)

	// Signed correctly, but announcing a binding for somebody else.
	dir.HandleAnnouncement("", announcementData(t, peerIdentity, directory.Announcement{
		PeerID:  "peer-x",
		Address: "0x3333333333333333333333333333333333333333",
	}))

	assert.Empty(t, dir.Snapshot())
}

func TestUnsignedAnnouncementRejected(t *testing.T) {
	dir, _ := newDirectory(t)
	peerIdentity, err := identity.FromHex(peerSecret)
	require.NoError(t, err)

	content, err := json.Marshal(directory.Announcement{PeerID: "peer-2", Address: peerIdentity.Address()})
	require.NoError(t, err)
	env := &messaging.Envelope{
		MessageID:   "m1",
		FromAgentID: peerIdentity.Address(),
		Content:     content,
		Timestamp:   time.Now().UnixMilli(),
	}
	data, err := env.Encode()
	require.NoError(t, err)

	dir.HandleAnnouncement("", data)
	assert.Empty(t, dir.Snapshot())
}

func TestConnectedSince(t *testing.T) {
	dir, _ := newDirectory(t)

	// ConnectedSince is keyed by the peer id's string form, as callers
	// get it from Snapshot and the overlay.
	pid := peer.ID("peer-9")

	_, ok := dir.ConnectedSince(pid.String())
	assert.False(t, ok)

	dir.HandleConnect(pid)
	first, ok := dir.ConnectedSince(pid.String())
	require.True(t, ok)

	// A repeated connect event does not reset the timestamp.
	dir.HandleConnect(pid)
	second, _ := dir.ConnectedSince(pid.String())
	assert.Equal(t, first, second)
}
