package policy

import "time"

// Role is the operational role of this node.
type Role int

const (
	RoleFull Role = iota
	RoleBootstrap
	RoleServer
	RoleLight
)

func (r Role) String() string {
	switch r {
	case RoleBootstrap:
		return "bootstrap"
	case RoleServer:
		return "server"
	case RoleLight:
		return "light"
	default:
		return "full"
	}
}

// ParseRole maps a NODE_TYPE tag to a Role. Unknown tags fall back to
// full.
func ParseRole(tag string) Role {
	switch tag {
	case "bootstrap":
		return RoleBootstrap
	case "server":
		return RoleServer
	case "light":
		return RoleLight
	default:
		return RoleFull
	}
}

// RoleConfig is the fully populated resource policy for a role. It
// drives the overlay engine, the directory cadence, and the messaging
// layer.
type RoleConfig struct {
	MaxConnections          int
	MinConnections          int
	MaxParallelDials        int
	DialTimeout             time.Duration
	AutoDialInterval        time.Duration
	EnableDHT               bool
	DHTServerMode           bool
	KBucketSize             int
	EnableGossip            bool
	GossipHeartbeat         time.Duration
	AllowPublishToZeroPeers bool
	EmitSelf                bool
	RelayMessages           bool
	BootstrapRequired       bool
	DHTUpdateInterval       time.Duration
	MinDHTUpdateInterval    time.Duration
}

// ConfigForRole maps a role to its resource policy. Pure function; the
// returned value is a copy.
func ConfigForRole(r Role) RoleConfig {
	switch r {
	case RoleBootstrap:
		return RoleConfig{
			MaxConnections:          1000,
			MinConnections:          3,
			MaxParallelDials:        100,
			DialTimeout:             30 * time.Second,
			AutoDialInterval:        10 * time.Second,
			EnableDHT:               true,
			DHTServerMode:           true,
			KBucketSize:             200,
			EnableGossip:            true,
			GossipHeartbeat:         time.Second,
			AllowPublishToZeroPeers: true,
			EmitSelf:                true,
			RelayMessages:           false,
			BootstrapRequired:       false,
			DHTUpdateInterval:       30 * time.Second,
			MinDHTUpdateInterval:    10 * time.Second,
		}
	case RoleServer:
		return RoleConfig{
			MaxConnections:          100,
			MinConnections:          2,
			MaxParallelDials:        50,
			DialTimeout:             30 * time.Second,
			AutoDialInterval:        10 * time.Second,
			EnableDHT:               true,
			DHTServerMode:           false,
			KBucketSize:             20,
			EnableGossip:            true,
			GossipHeartbeat:         time.Second,
			AllowPublishToZeroPeers: true,
			EmitSelf:                true,
			RelayMessages:           true,
			BootstrapRequired:       true,
			DHTUpdateInterval:       45 * time.Second,
			MinDHTUpdateInterval:    15 * time.Second,
		}
	case RoleLight:
		return RoleConfig{
			MaxConnections:          10,
			MinConnections:          1,
			MaxParallelDials:        10,
			DialTimeout:             30 * time.Second,
			AutoDialInterval:        20 * time.Second,
			EnableDHT:               false,
			DHTServerMode:           false,
			KBucketSize:             0,
			EnableGossip:            false,
			GossipHeartbeat:         time.Second,
			AllowPublishToZeroPeers: false,
			EmitSelf:                true,
			RelayMessages:           false,
			BootstrapRequired:       true,
			DHTUpdateInterval:       120 * time.Second,
			MinDHTUpdateInterval:    30 * time.Second,
		}
	default: // RoleFull
		return RoleConfig{
			MaxConnections:          50,
			MinConnections:          1,
			MaxParallelDials:        25,
			DialTimeout:             30 * time.Second,
			AutoDialInterval:        10 * time.Second,
			EnableDHT:               true,
			DHTServerMode:           false,
			KBucketSize:             20,
			EnableGossip:            true,
			GossipHeartbeat:         time.Second,
			AllowPublishToZeroPeers: true,
			EmitSelf:                true,
			RelayMessages:           false,
			BootstrapRequired:       true,
			DHTUpdateInterval:       60 * time.Second,
			MinDHTUpdateInterval:    20 * time.Second,
		}
	}
}

// AnnounceInterval is the own-binding publish cadence, bounded below so
// misconfiguration cannot cause DHT storms.
func (c RoleConfig) AnnounceInterval() time.Duration {
	if c.DHTUpdateInterval < c.MinDHTUpdateInterval {
		return c.MinDHTUpdateInterval
	}
	return c.DHTUpdateInterval
}
