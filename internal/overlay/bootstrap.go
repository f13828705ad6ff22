package overlay

import (
	"fmt"
	"strings"

	"github.com/multiformats/go-multiaddr"
)

// BootstrapPeer is a compiled-in rendezvous peer. Its overlay peer id
// is pinned from persistent key material so the derived multiaddress is
// stable across restarts.
type BootstrapPeer struct {
	Name     string
	Hostname string
	Port     int
	PeerID   string
	// Account address of the bootstrap agent. Kept alongside the pinned
	// peer id so role resolution (FindBootstrap) can match a node by its
	// account address without a registry call.
	Address string
}

// Multiaddr derives the dialable address from the configured hostname,
// port, and pinned peer id. Bootstrap addresses are never learned from
// untrusted sources.
func (b BootstrapPeer) Multiaddr() (multiaddr.Multiaddr, error) {
	return multiaddr.NewMultiaddr(
		fmt.Sprintf("/dns4/%s/tcp/%d/p2p/%s", b.Hostname, b.Port, b.PeerID))
}

// bootstrapRegistry lists the well-known rendezvous peers per network.
// A deployment adds networks by extending this table.
var bootstrapRegistry = map[string][]BootstrapPeer{
	"base": {
		{Name: "bootstrap-1", Hostname: "bootstrap-1.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAm8wKVBMtCZtU8RbBJKKKy9Pj6EZ7BV1uKHDWMRnEM2Q4A", Address: "0x1f4bdab9dbd2b0ca10a1e9cf323fb30eab3ab587"},
		{Name: "bootstrap-2", Hostname: "bootstrap-2.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAkzz2WrdVnSXd9kCfqUYH92VkNRmYgRYdEoCyYKpzBGmLa", Address: "0x9e12c1b2f8d64ea6ad68ccda3b1bbc5b14d6f053"},
		{Name: "bootstrap-3", Hostname: "bootstrap-3.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAmVx4mrurAqdN9vZDJFrvYYCSttU8xkYDU72sEPP6qyGbn", Address: "0x4af13e2bcec5b8431367e0cc3bb156c544a37a82"},
		{Name: "bootstrap-4", Hostname: "bootstrap-4.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAm4Vb7KvUzwUJfEfnoQHkZr5HdjBvTHkfFFFqsKpg7bgzP", Address: "0xc2e9d0a31bd6cd64e432c47fbbf3a1ca4f9e7d11"},
	},
	"sepolia": {
		{Name: "bootstrap-1", Hostname: "bootstrap-1.sepolia.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAmDrMFGZ6mqoyScA3NB5kYtuUzVHeUWXYpTRFPrvmNV4Rb", Address: "0x7a3c6be2f04de2dac1e1bcd329b1c8cdbbae2b1d"},
		{Name: "bootstrap-2", Hostname: "bootstrap-2.sepolia.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAkwJUjCCQXLyVYkEfkSZVSRqkmFmXB3cX8T5DKrG6S8aPN", Address: "0x82e51dcf2f0a41b2ae8d7cb4f1db1a4e55f9cc60"},
		{Name: "bootstrap-3", Hostname: "bootstrap-3.sepolia.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAm5rUcr3D7PCkgujqEBmNvRX1N9XFVZoyTkqqXRVCJ4DpW", Address: "0xd013a7bd2f84c3e60f54b66b01e9dbd844cfb2a4"},
		{Name: "bootstrap-4", Hostname: "bootstrap-4.sepolia.agentmesh.net", Port: 4001, PeerID: "16Uiu2HAmQbJ1SyUfFprSD9TF6dGJRYmFFUrXkLHhyFkK31vqsmtV", Address: "0x33b18c870dfc2bd6be1ad25c8d3a5f86a76ff2c0"},
	},
}

// BootstrapSet returns the bootstrap peers for a network, or nil for an
// unknown network.
func BootstrapSet(network string) []BootstrapPeer {
	return bootstrapRegistry[network]
}

// FindBootstrap resolves this node's own bootstrap entry by account
// address or configured name. The second return is false when the node
// is not in the bootstrap set.
func FindBootstrap(network, address, name string) (BootstrapPeer, bool) {
	for _, b := range bootstrapRegistry[network] {
		if strings.EqualFold(b.Address, address) || (name != "" && b.Name == name) {
			return b, true
		}
	}
	return BootstrapPeer{}, false
}
