package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh/internal/config"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRIVATE_KEY", testKey)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, testKey, cfg.PrivateKey)
	assert.Equal(t, "base", cfg.Network)
	assert.Equal(t, "full", cfg.NodeType)
	assert.Equal(t, 4001, cfg.Port)
	assert.False(t, cfg.UseEncryption)
	assert.Equal(t, "127.0.0.1:50051", cfg.GRPCAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PRIVATE_KEY", testKey)
	t.Setenv("NETWORK", "sepolia")
	t.Setenv("NODE_TYPE", "server")
	t.Setenv("P2P_PORT", "4500")
	t.Setenv("AGENT_NAME", "agent-7")
	t.Setenv("USE_ENCRYPTION", "true")
	t.Setenv("REGISTRY_ADDRESS", "0x00000000000000000000000000000000000000aa")
	t.Setenv("RPC_URL", "http://localhost:8545")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "sepolia", cfg.Network)
	assert.Equal(t, "server", cfg.NodeType)
	assert.Equal(t, 4500, cfg.Port)
	assert.Equal(t, "agent-7", cfg.AgentName)
	assert.True(t, cfg.UseEncryption)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.RegistryAddress)
	assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
}

func TestMissingPrivateKeyFails(t *testing.T) {
	t.Setenv("PRIVATE_KEY", "")
	_, err := config.Load("")
	assert.Error(t, err)
}
