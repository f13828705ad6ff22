package overlay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/internal/overlay"
)

func TestBootstrapSetKnownNetworks(t *testing.T) {
	base := overlay.BootstrapSet("base")
	require.Len(t, base, 4)
	sepolia := overlay.BootstrapSet("sepolia")
	require.Len(t, sepolia, 4)

	assert.Nil(t, overlay.BootstrapSet("unknown"))
}

func TestMultiaddrDerivation(t *testing.T) {
	b := overlay.BootstrapPeer{
		Name:     "bootstrap-1",
		Hostname: "bootstrap-1.agentmesh.net",
		Port:     4001,
		PeerID:   "16Uiu2HAm8wKVBMtCZtU8RbBJKKKy9Pj6EZ7BV1uKHDWMRnEM2Q4A",
	}
	addr, err := b.Multiaddr()
	require.NoError(t, err)
	assert.Equal(t,
		"/dns4/bootstrap-1.agentmesh.net/tcp/4001/p2p/16Uiu2HAm8wKVBMtCZtU8RbBJKKKy9Pj6EZ7BV1uKHDWMRnEM2Q4A",
		addr.String())
}

func TestFindBootstrapByAddress(t *testing.T) {
	want := overlay.BootstrapSet("base")[0]

	// Case-insensitive account address match.
	got, ok := overlay.FindBootstrap("base", "0x1F4BDAB9DBD2B0CA10A1E9CF323FB30EAB3AB587", "")
	require.True(t, ok)
	assert.Equal(t, want.Name, got.Name)

	_, ok = overlay.FindBootstrap("base", "0x0000000000000000000000000000000000000000", "")
	assert.False(t, ok)
}

func TestFindBootstrapByName(t *testing.T) {
	got, ok := overlay.FindBootstrap("sepolia", "0x0000000000000000000000000000000000000000", "bootstrap-3")
	require.True(t, ok)
	assert.Equal(t, "bootstrap-3.sepolia.agentmesh.net", got.Hostname)

	_, ok = overlay.FindBootstrap("sepolia", "", "")
	assert.False(t, ok)
}
