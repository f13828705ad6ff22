package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentmesh/agentmesh/internal/policy"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, policy.RoleBootstrap, policy.ParseRole("bootstrap"))
	assert.Equal(t, policy.RoleFull, policy.ParseRole("full"))
	assert.Equal(t, policy.RoleServer, policy.ParseRole("server"))
	assert.Equal(t, policy.RoleLight, policy.ParseRole("light"))
	assert.Equal(t, policy.RoleFull, policy.ParseRole("something-else"))
}

func TestConfigIsPure(t *testing.T) {
	for _, r := range []policy.Role{policy.RoleBootstrap, policy.RoleFull, policy.RoleServer, policy.RoleLight} {
		first := policy.ConfigForRole(r)
		second := policy.ConfigForRole(r)
		assert.Equal(t, first, second, "role %s", r)
	}
}

func TestBootstrapConfig(t *testing.T) {
	cfg := policy.ConfigForRole(policy.RoleBootstrap)
	assert.Equal(t, 1000, cfg.MaxConnections)
	assert.Equal(t, 3, cfg.MinConnections)
	assert.Equal(t, 100, cfg.MaxParallelDials)
	assert.True(t, cfg.EnableDHT)
	assert.True(t, cfg.DHTServerMode)
	assert.Equal(t, 200, cfg.KBucketSize)
	assert.False(t, cfg.BootstrapRequired)
	assert.Equal(t, 30*time.Second, cfg.DHTUpdateInterval)
	assert.Equal(t, 10*time.Second, cfg.MinDHTUpdateInterval)
}

func TestFullConfig(t *testing.T) {
	cfg := policy.ConfigForRole(policy.RoleFull)
	assert.Equal(t, 50, cfg.MaxConnections)
	assert.Equal(t, 25, cfg.MaxParallelDials)
	assert.True(t, cfg.EnableDHT)
	assert.False(t, cfg.DHTServerMode)
	assert.Equal(t, 20, cfg.KBucketSize)
	assert.True(t, cfg.BootstrapRequired)
	assert.Equal(t, 60*time.Second, cfg.DHTUpdateInterval)
}

func TestServerConfig(t *testing.T) {
	cfg := policy.ConfigForRole(policy.RoleServer)
	assert.Equal(t, 100, cfg.MaxConnections)
	assert.Equal(t, 2, cfg.MinConnections)
	assert.True(t, cfg.RelayMessages)
	assert.Equal(t, 45*time.Second, cfg.DHTUpdateInterval)
	assert.Equal(t, 15*time.Second, cfg.MinDHTUpdateInterval)
}

func TestLightConfig(t *testing.T) {
	cfg := policy.ConfigForRole(policy.RoleLight)
	assert.Equal(t, 10, cfg.MaxConnections)
	assert.False(t, cfg.EnableDHT)
	assert.False(t, cfg.EnableGossip)
	assert.Equal(t, 0, cfg.KBucketSize)
	assert.False(t, cfg.AllowPublishToZeroPeers)
	assert.Equal(t, 20*time.Second, cfg.AutoDialInterval)
	assert.Equal(t, 120*time.Second, cfg.DHTUpdateInterval)
}

func TestAnnounceIntervalBoundedBelow(t *testing.T) {
	cfg := policy.ConfigForRole(policy.RoleFull)
	assert.Equal(t, cfg.DHTUpdateInterval, cfg.AnnounceInterval())

	cfg.DHTUpdateInterval = time.Second
	assert.Equal(t, cfg.MinDHTUpdateInterval, cfg.AnnounceInterval())
}
