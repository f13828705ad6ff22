// Package config loads node configuration from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration struct.
type Config struct {
	PrivateKey          string `mapstructure:"privateKey"`
	RegistryAddress     string `mapstructure:"registryAddress"`
	RPCURL              string `mapstructure:"rpcUrl"`
	Network             string `mapstructure:"network"`
	NodeType            string `mapstructure:"nodeType"`
	Port                int    `mapstructure:"port"`
	AgentName           string `mapstructure:"agentName"`
	UseEncryption       bool   `mapstructure:"useEncryption"`
	BootstrapPrivateKey string `mapstructure:"bootstrapPrivateKey"`
	GRPCAddr            string `mapstructure:"grpcAddr"`
	RESTAddr            string `mapstructure:"restAddr"`
	PeerCachePath       string `mapstructure:"peerCachePath"`
}

// Load reads configuration from file and environment. Environment
// variables win over file values; PRIVATE_KEY is the only mandatory
// setting.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("network", "base")
	v.SetDefault("nodeType", "full")
	v.SetDefault("port", 4001)
	v.SetDefault("agentName", "")
	v.SetDefault("useEncryption", false)
	v.SetDefault("grpcAddr", "127.0.0.1:50051")
	v.SetDefault("restAddr", "")
	v.SetDefault("peerCachePath", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// PRIVATE_KEY, REGISTRY_ADDRESS, RPC_URL, NODE_TYPE, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("privateKey", "PRIVATE_KEY")
	v.BindEnv("registryAddress", "REGISTRY_ADDRESS")
	v.BindEnv("rpcUrl", "RPC_URL")
	v.BindEnv("network", "NETWORK")
	v.BindEnv("nodeType", "NODE_TYPE")
	v.BindEnv("port", "PORT", "P2P_PORT")
	v.BindEnv("agentName", "AGENT_NAME", "BOOTSTRAP_NAME")
	v.BindEnv("useEncryption", "USE_ENCRYPTION")
	v.BindEnv("bootstrapPrivateKey", "BOOTSTRAP_PRIVATE_KEY")
	v.BindEnv("grpcAddr", "GRPC_ADDR")
	v.BindEnv("restAddr", "REST_ADDR")
	v.BindEnv("peerCachePath", "PEER_CACHE_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("PRIVATE_KEY is required")
	}

	return cfg, nil
}
