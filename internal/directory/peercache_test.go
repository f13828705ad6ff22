package directory_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/directory"
)

func TestPeerCacheRoundTrip(t *testing.T) {
	cache, err := directory.OpenPeerCache(filepath.Join(t.TempDir(), "peers"), zap.NewNop())
	require.NoError(t, err)
	defer cache.Close()

	binding := directory.CachedBinding{
		PeerID:     "peer-1",
		Name:       "alice",
		Multiaddrs: []string{"/ip4/127.0.0.1/tcp/4001/p2p/peer-1"},
	}
	require.NoError(t, cache.Put("0xaabb", binding))

	got, ok, err := cache.Get("0xaabb")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, binding, got)

	_, ok, err = cache.Get("0xmissing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPeerCacheLoadAll(t *testing.T) {
	cache, err := directory.OpenPeerCache(filepath.Join(t.TempDir(), "peers"), zap.NewNop())
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("0x01", directory.CachedBinding{PeerID: "p1"}))
	require.NoError(t, cache.Put("0x02", directory.CachedBinding{PeerID: "p2"}))

	all, err := cache.LoadAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "p1", all["0x01"].PeerID)
	assert.Equal(t, "p2", all["0x02"].PeerID)
}
