// Package overlay brings up the libp2p networking stack — transport,
// security, muxer, Kademlia DHT, and gossip pubsub — according to the
// node's role policy, and exposes it to the rest of the node.
package overlay

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/ipfs/go-cid"
	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"
	"github.com/libp2p/go-libp2p/p2p/muxer/yamux"
	"github.com/libp2p/go-libp2p/p2p/net/connmgr"
	"github.com/libp2p/go-libp2p/p2p/security/noise"
	"github.com/libp2p/go-libp2p/p2p/transport/tcp"
	"github.com/multiformats/go-multiaddr"
	"github.com/multiformats/go-multihash"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/policy"
)

const (
	dhtProtocolPrefix = "/agentmesh"
	mdnsServiceTag    = "agentmesh-discovery"

	dialTimeout    = 10 * time.Second
	dialRetryDelay = 5 * time.Second

	dhtGetTimeout = 10 * time.Second
	dhtPutTimeout = 20 * time.Second
	dhtOpTimeout  = 30 * time.Second
)

// ErrNoBootstrapPeers is fatal for roles that require rendezvous.
var ErrNoBootstrapPeers = errors.New("no bootstrap peers reachable")

// ErrNoTopicPeers is returned by Publish when the policy forbids
// publishing into an empty mesh.
var ErrNoTopicPeers = errors.New("no peers on topic")

// Handler consumes raw messages delivered on a subscribed topic.
type Handler func(from peer.ID, data []byte)

// Config carries everything the engine needs to start.
type Config struct {
	Port        int
	Network     string
	IsBootstrap bool
	// Hostname is the publicly reachable DNS name, set only for
	// bootstrap nodes (from their bootstrap registry entry).
	Hostname string
	// PinnedKey is the raw secp256k1 secret for a pinned host identity.
	// Nil means an ephemeral identity is generated at start.
	PinnedKey []byte
	Policy    policy.RoleConfig
}

// Engine owns the transport stack. All other components consume it
// through its interface and hold no state beyond its lifetime.
type Engine struct {
	cfg    Config
	logger *zap.Logger

	host   host.Host
	dht    *dht.IpfsDHT
	pubsub *pubsub.PubSub

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
	subs   []*pubsub.Subscription

	onPeerConnected func(peer.ID)

	cancel context.CancelFunc
}

// New creates an Engine. Nothing is started until Start.
func New(cfg Config, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger,
		topics: make(map[string]*pubsub.Topic),
	}
}

// OnPeerConnected registers the connection-event callback. Must be set
// before Start.
func (e *Engine) OnPeerConnected(fn func(peer.ID)) {
	e.onPeerConnected = fn
}

// Start brings up the host, DHT, and pubsub, begins listening, and
// dials the bootstrap set. A listener failure is fatal; so is ending up
// with zero bootstrap connections when the role requires rendezvous.
func (e *Engine) Start(ctx context.Context) error {
	ctx, e.cancel = context.WithCancel(ctx)

	hostKey, err := e.hostKey()
	if err != nil {
		return err
	}

	cm, err := connmgr.NewConnManager(
		e.cfg.Policy.MinConnections,
		e.cfg.Policy.MaxConnections,
		connmgr.WithGracePeriod(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("conn manager: %w", err)
	}

	opts := []libp2p.Option{
		libp2p.Identity(hostKey),
		libp2p.ListenAddrStrings(fmt.Sprintf("/ip4/0.0.0.0/tcp/%d", e.cfg.Port)),
		libp2p.Transport(tcp.NewTCPTransport),
		libp2p.Security(noise.ID, noise.New),
		libp2p.Muxer(yamux.ID, yamux.DefaultTransport),
		libp2p.ConnectionManager(cm),
	}
	if e.cfg.IsBootstrap && e.cfg.Hostname != "" {
		public, err := multiaddr.NewMultiaddr(fmt.Sprintf("/dns4/%s/tcp/%d", e.cfg.Hostname, e.cfg.Port))
		if err != nil {
			return fmt.Errorf("advertise addr: %w", err)
		}
		opts = append(opts, libp2p.AddrsFactory(func(addrs []multiaddr.Multiaddr) []multiaddr.Multiaddr {
			return append(addrs, public)
		}))
	}

	h, err := libp2p.New(opts...)
	if err != nil {
		return fmt.Errorf("libp2p host: %w", err)
	}
	e.host = h

	h.Network().Notify(&network.NotifyBundle{
		ConnectedF: func(n network.Network, c network.Conn) {
			if len(n.Peers()) > e.cfg.Policy.MaxConnections {
				_ = c.Close()
				return
			}
			if e.onPeerConnected != nil {
				go e.onPeerConnected(c.RemotePeer())
			}
		},
	})

	if e.cfg.Policy.EnableDHT {
		mode := dht.ModeClient
		if e.cfg.Policy.DHTServerMode {
			mode = dht.ModeServer
		}
		kadDHT, err := dht.New(ctx, h,
			dht.Mode(mode),
			dht.ProtocolPrefix(dhtProtocolPrefix),
			dht.BucketSize(e.cfg.Policy.KBucketSize),
		)
		if err != nil {
			return fmt.Errorf("kademlia dht: %w", err)
		}
		if err := kadDHT.Bootstrap(ctx); err != nil {
			e.logger.Warn("DHT bootstrap failed (will retry)", zap.Error(err))
		}
		e.dht = kadDHT
	}

	if e.cfg.Policy.EnableGossip {
		params := pubsub.DefaultGossipSubParams()
		params.HeartbeatInterval = e.cfg.Policy.GossipHeartbeat
		ps, err := pubsub.NewGossipSub(ctx, h,
			pubsub.WithGossipSubParams(params),
			pubsub.WithDirectPeers(e.directPeers()),
		)
		if err != nil {
			return fmt.Errorf("gossipsub: %w", err)
		}
		e.pubsub = ps
	}

	if !e.cfg.IsBootstrap && e.cfg.Policy.EnableGossip {
		svc := mdns.NewMdnsService(h, mdnsServiceTag, &mdnsNotifee{engine: e, logger: e.logger})
		if err := svc.Start(); err != nil {
			e.logger.Warn("mDNS start failed (LAN discovery disabled)", zap.Error(err))
		}
	}

	if err := e.dialBootstrapPeers(ctx); err != nil {
		return err
	}
	go e.maintainConnections(ctx)

	e.logger.Info("overlay engine started",
		zap.String("peerID", h.ID().String()),
		zap.Strings("addrs", addrsToStrings(h.Addrs())),
		zap.Bool("bootstrap", e.cfg.IsBootstrap),
	)
	return nil
}

// hostKey returns the pinned secp256k1 host key or a fresh ephemeral
// one. Non-bootstrap peers get a new overlay peer id on every start.
func (e *Engine) hostKey() (crypto.PrivKey, error) {
	if len(e.cfg.PinnedKey) > 0 {
		key, err := crypto.UnmarshalSecp256k1PrivateKey(e.cfg.PinnedKey)
		if err != nil {
			return nil, fmt.Errorf("pinned host key: %w", err)
		}
		return key, nil
	}
	key, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	return key, nil
}

// directPeers returns the gossip direct-peer set: the other bootstrap
// peers for a bootstrap node, all of them for everyone else.
func (e *Engine) directPeers() []peer.AddrInfo {
	var infos []peer.AddrInfo
	for _, b := range BootstrapSet(e.cfg.Network) {
		addr, err := b.Multiaddr()
		if err != nil {
			continue
		}
		info, err := peer.AddrInfoFromP2pAddr(addr)
		if err != nil {
			continue
		}
		if e.host != nil && info.ID == e.host.ID() {
			continue
		}
		infos = append(infos, *info)
	}
	return infos
}

// dialBootstrapPeers dials every bootstrap peer other than self, with
// bounded retries. Individual failures are logged and counted; a role
// that requires rendezvous fails startup with zero connections.
func (e *Engine) dialBootstrapPeers(ctx context.Context) error {
	attempts := uint(5)
	if e.cfg.IsBootstrap {
		attempts = 3
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	connected := 0
	dialSlots := make(chan struct{}, e.cfg.Policy.MaxParallelDials)

	for _, b := range BootstrapSet(e.cfg.Network) {
		addr, err := b.Multiaddr()
		if err != nil {
			e.logger.Warn("invalid bootstrap entry", zap.String("name", b.Name), zap.Error(err))
			continue
		}
		info, err := peer.AddrInfoFromP2pAddr(addr)
		if err != nil {
			e.logger.Warn("invalid bootstrap entry", zap.String("name", b.Name), zap.Error(err))
			continue
		}
		if info.ID == e.host.ID() {
			continue
		}
		if cm := e.host.ConnManager(); cm != nil {
			cm.Protect(info.ID, "bootstrap")
		}

		wg.Add(1)
		go func(pi peer.AddrInfo, name string) {
			defer wg.Done()
			dialSlots <- struct{}{}
			defer func() { <-dialSlots }()
			err := retry.Do(
				func() error {
					dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
					defer cancel()
					return e.host.Connect(dialCtx, pi)
				},
				retry.Attempts(attempts),
				retry.Delay(dialRetryDelay),
				retry.DelayType(retry.FixedDelay),
				retry.Context(ctx),
				retry.LastErrorOnly(true),
			)
			if err != nil {
				e.logger.Warn("bootstrap dial failed", zap.String("name", name), zap.Error(err))
				return
			}
			e.logger.Info("connected to bootstrap peer", zap.String("name", name), zap.String("peerID", pi.ID.String()))
			mu.Lock()
			connected++
			mu.Unlock()
		}(*info, b.Name)
	}
	wg.Wait()

	if e.cfg.Policy.BootstrapRequired && connected == 0 {
		return ErrNoBootstrapPeers
	}
	return nil
}

// maintainConnections redials the bootstrap set whenever the node
// falls below its minimum connection count.
func (e *Engine) maintainConnections(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.Policy.AutoDialInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if len(e.host.Network().Peers()) >= e.cfg.Policy.MinConnections {
				continue
			}
			for _, info := range e.directPeers() {
				dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
				if err := e.host.Connect(dialCtx, info); err != nil {
					e.logger.Debug("auto-dial failed", zap.String("peer", info.ID.String()), zap.Error(err))
				}
				cancel()
			}
		}
	}
}

// PeerID returns the overlay peer id of this node.
func (e *Engine) PeerID() string {
	return e.host.ID().String()
}

// Multiaddrs returns the current listen addresses, p2p-suffixed.
func (e *Engine) Multiaddrs() []string {
	addrs := e.host.Addrs()
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String()+"/p2p/"+e.host.ID().String())
	}
	return out
}

// ConnectedPeers returns the peer ids of all live connections.
func (e *Engine) ConnectedPeers() []peer.ID {
	return e.host.Network().Peers()
}

// RoutingTableSize reports the DHT routing table size, 0 without a DHT.
func (e *Engine) RoutingTableSize() int {
	if e.dht == nil {
		return 0
	}
	return e.dht.RoutingTable().Size()
}

// Dial opens a connection to a peer already present in the peerstore,
// or via the supplied addresses.
func (e *Engine) Dial(ctx context.Context, info peer.AddrInfo) error {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	return e.host.Connect(dialCtx, info)
}

// Subscribe joins a topic and delivers every message to handler on a
// dedicated goroutine. Handlers must not block.
func (e *Engine) Subscribe(ctx context.Context, topic string, handler Handler) error {
	if e.pubsub == nil {
		return fmt.Errorf("gossip disabled by role policy")
	}
	t, err := e.joinTopic(topic)
	if err != nil {
		return err
	}
	sub, err := t.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	e.mu.Lock()
	e.subs = append(e.subs, sub)
	e.mu.Unlock()

	go func() {
		for {
			msg, err := sub.Next(ctx)
			if err != nil {
				return
			}
			if !e.cfg.Policy.EmitSelf && msg.ReceivedFrom == e.host.ID() {
				continue
			}
			handler(msg.ReceivedFrom, msg.Data)
		}
	}()
	return nil
}

// Publish sends data on a topic. With AllowPublishToZeroPeers disabled,
// publishing into an empty mesh is an error.
func (e *Engine) Publish(ctx context.Context, topic string, data []byte) error {
	if e.pubsub == nil {
		return fmt.Errorf("gossip disabled by role policy")
	}
	t, err := e.joinTopic(topic)
	if err != nil {
		return err
	}
	if !e.cfg.Policy.AllowPublishToZeroPeers && len(t.ListPeers()) == 0 {
		return ErrNoTopicPeers
	}
	return t.Publish(ctx, data)
}

func (e *Engine) joinTopic(topic string) (*pubsub.Topic, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.topics[topic]; ok {
		return t, nil
	}
	t, err := e.pubsub.Join(topic)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", topic, err)
	}
	e.topics[topic] = t
	return t, nil
}

// Provide announces this node as a provider for the given directory
// key.
func (e *Engine) Provide(ctx context.Context, key string) error {
	if e.dht == nil {
		return fmt.Errorf("dht disabled by role policy")
	}
	c, err := keyToCid(key)
	if err != nil {
		return err
	}
	opCtx, cancel := context.WithTimeout(ctx, dhtOpTimeout)
	defer cancel()
	return e.dht.Provide(opCtx, c, true)
}

// FindProviders streams providers for the given key. The returned
// channel closes on deadline or exhaustion; no providers found is an
// empty result, not an error.
func (e *Engine) FindProviders(ctx context.Context, key string, limit int) (<-chan peer.AddrInfo, error) {
	if e.dht == nil {
		return nil, fmt.Errorf("dht disabled by role policy")
	}
	c, err := keyToCid(key)
	if err != nil {
		return nil, err
	}
	return e.dht.FindProvidersAsync(ctx, c, limit), nil
}

// PutValue stores a value record in the DHT.
func (e *Engine) PutValue(ctx context.Context, key string, value []byte) error {
	if e.dht == nil {
		return fmt.Errorf("dht disabled by role policy")
	}
	opCtx, cancel := context.WithTimeout(ctx, dhtPutTimeout)
	defer cancel()
	return e.dht.PutValue(opCtx, key, value)
}

// GetValue fetches a value record from the DHT.
func (e *Engine) GetValue(ctx context.Context, key string) ([]byte, error) {
	if e.dht == nil {
		return nil, fmt.Errorf("dht disabled by role policy")
	}
	opCtx, cancel := context.WithTimeout(ctx, dhtGetTimeout)
	defer cancel()
	return e.dht.GetValue(opCtx, key)
}

// AddrInfoForPeer builds an AddrInfo from the peerstore's known
// addresses for the peer.
func (e *Engine) AddrInfoForPeer(id peer.ID) peer.AddrInfo {
	return peer.AddrInfo{ID: id, Addrs: e.host.Peerstore().Addrs(id)}
}

// Close tears down subscriptions, topics, the DHT, and the host.
func (e *Engine) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Lock()
	for _, sub := range e.subs {
		sub.Cancel()
	}
	e.subs = nil
	for _, t := range e.topics {
		_ = t.Close()
	}
	e.topics = make(map[string]*pubsub.Topic)
	e.mu.Unlock()

	if e.dht != nil {
		_ = e.dht.Close()
	}
	if e.host != nil {
		return e.host.Close()
	}
	return nil
}

// keyToCid maps a directory key string onto a CID for DHT provide
// operations.
func keyToCid(key string) (cid.Cid, error) {
	mh, err := multihash.Sum([]byte(key), multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("hash key: %w", err)
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

func addrsToStrings(addrs []multiaddr.Multiaddr) []string {
	s := make([]string, len(addrs))
	for i, a := range addrs {
		s[i] = a.String()
	}
	return s
}

// mdnsNotifee connects to peers found on the local subnet.
type mdnsNotifee struct {
	engine *Engine
	logger *zap.Logger
}

func (n *mdnsNotifee) HandlePeerFound(pi peer.AddrInfo) {
	n.logger.Info("mDNS: found peer", zap.String("peerID", pi.ID.String()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.engine.host.Connect(ctx, pi); err != nil {
		n.logger.Warn("mDNS connect failed", zap.String("peer", pi.ID.String()), zap.Error(err))
	}
}
