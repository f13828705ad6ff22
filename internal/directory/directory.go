// Package directory maintains the eventually-consistent mapping from
// account addresses to overlay peer identities.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
	"github.com/agentmesh/agentmesh/internal/overlay"
	"github.com/agentmesh/agentmesh/internal/policy"
)

// TopicAnnouncements carries signed directory announcements.
const TopicAnnouncements = "agent-announcements"

// ethKeyPrefix is the DHT key namespace the directory owns.
const ethKeyPrefix = "/eth/"

const lookupTimeout = 10 * time.Second

// ErrNotFound is returned by Lookup when no binding could be resolved
// locally or via the DHT.
var ErrNotFound = errors.New("agent not found in directory")

// Announcement is the decoded content of a directory gossip message.
type Announcement struct {
	PeerID     string   `json:"peerId"`
	Address    string   `json:"address"`
	Name       string   `json:"name,omitempty"`
	Multiaddrs []string `json:"multiaddrs,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// Entry is a snapshot of one directory binding.
type Entry struct {
	Address    string
	PeerID     string
	Name       string
	Multiaddrs []string
	ObservedAt time.Time
}

// Directory owns the binding tables addrToPeer, peerToAddr, and names,
// plus per-address multiaddrs and observedAt and per-peer connect
// times. All address keys are lowercase; the node's own address is
// never stored.
type Directory struct {
	self   string
	name   string
	id     *identity.Identity
	engine *overlay.Engine
	cfg    policy.RoleConfig
	cache  *PeerCache
	logger *zap.Logger

	mu         sync.RWMutex
	addrToPeer map[string]string
	peerToAddr map[string]string
	names      map[string]string
	multiaddrs map[string][]string
	observedAt map[string]time.Time
	// connectedSince records the first connect time per overlay peer id
	// (string form), bound or not. Entries are not removed on
	// disconnect.
	connectedSince map[string]time.Time
}

// New creates a Directory for the given identity. cache may be nil.
func New(id *identity.Identity, name string, engine *overlay.Engine, cfg policy.RoleConfig, cache *PeerCache, logger *zap.Logger) *Directory {
	return &Directory{
		self:           id.Address(),
		name:           name,
		id:             id,
		engine:         engine,
		cfg:            cfg,
		cache:          cache,
		logger:         logger,
		addrToPeer:     make(map[string]string),
		peerToAddr:     make(map[string]string),
		names:          make(map[string]string),
		multiaddrs:     make(map[string][]string),
		observedAt:     make(map[string]time.Time),
		connectedSince: make(map[string]time.Time),
	}
}

// Start subscribes to the announcement topic and launches the periodic
// own-binding publisher. Light nodes run neither.
func (d *Directory) Start(ctx context.Context) error {
	if !d.cfg.EnableGossip {
		return nil
	}
	if err := d.engine.Subscribe(ctx, TopicAnnouncements, d.HandleAnnouncement); err != nil {
		return err
	}
	go d.publishLoop(ctx)
	return nil
}

// HandleConnect records a peer-connect event from the overlay. The
// event supplies only the overlay peer id; the binding completes when a
// DHT hit or verified announcement arrives.
func (d *Directory) HandleConnect(id peer.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.connectedSince[id.String()]; !ok {
		d.connectedSince[id.String()] = time.Now()
	}
}

// Bind records an address→peer binding from a trusted source (DHT
// provider hit or verified announcement). Writes normalize addresses to
// lowercase; the binding is corrected on conflict, never eagerly
// purged.
func (d *Directory) Bind(address, peerID, name string, maddrs []string) {
	address = strings.ToLower(address)
	if address == d.self || address == "" || peerID == "" {
		return
	}
	d.mu.Lock()
	if old, ok := d.addrToPeer[address]; ok && old != peerID {
		delete(d.peerToAddr, old)
	}
	d.addrToPeer[address] = peerID
	d.peerToAddr[peerID] = address
	if name != "" {
		d.names[address] = name
	}
	if len(maddrs) > 0 {
		d.multiaddrs[address] = maddrs
	}
	d.observedAt[address] = time.Now()
	d.mu.Unlock()

	if d.cache != nil {
		if err := d.cache.Put(address, CachedBinding{PeerID: peerID, Name: name, Multiaddrs: maddrs}); err != nil {
			d.logger.Debug("peer cache write failed", zap.Error(err))
		}
	}
}

// HandleAnnouncement verifies and applies one announcement message. The
// announcement is trusted iff the enclosing envelope is signed by its
// fromAgentId and that address matches the announced binding.
func (d *Directory) HandleAnnouncement(from peer.ID, data []byte) {
	env, err := messaging.DecodeEnvelope(data)
	if err != nil {
		d.logger.Debug("malformed announcement", zap.Error(err))
		return
	}
	if !env.VerifySignature() {
		d.logger.Debug("announcement signature invalid", zap.String("from", env.FromAgentID))
		return
	}
	var ann Announcement
	if err := json.Unmarshal(env.Content, &ann); err != nil {
		d.logger.Debug("malformed announcement content", zap.Error(err))
		return
	}
	if !strings.EqualFold(env.FromAgentID, ann.Address) {
		d.logger.Debug("announcement address mismatch",
			zap.String("signer", env.FromAgentID), zap.String("announced", ann.Address))
		return
	}
	d.Bind(ann.Address, ann.PeerID, ann.Name, ann.Multiaddrs)
}

// Lookup resolves an account address to an overlay peer id: local table
// first, then a capped DHT provider query. The first provider event
// wins and is stored.
func (d *Directory) Lookup(ctx context.Context, address string) (string, error) {
	address = strings.ToLower(address)

	d.mu.RLock()
	peerID, ok := d.addrToPeer[address]
	d.mu.RUnlock()
	if ok {
		return peerID, nil
	}
	if !d.cfg.EnableDHT {
		return "", ErrNotFound
	}

	queryCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	providers, err := d.engine.FindProviders(queryCtx, ethKeyPrefix+address, 1)
	if err != nil {
		return "", ErrNotFound
	}
	for info := range providers {
		if info.ID == "" {
			continue
		}
		maddrs := make([]string, 0, len(info.Addrs))
		for _, a := range info.Addrs {
			maddrs = append(maddrs, a.String())
		}
		d.Bind(address, info.ID.String(), "", maddrs)
		return info.ID.String(), nil
	}
	return "", ErrNotFound
}

// publishLoop publishes the node's own binding on the configured
// cadence, bounded below to avoid DHT storms.
func (d *Directory) publishLoop(ctx context.Context) {
	interval := d.cfg.AnnounceInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First announcement goes out immediately so peers can find a
	// fresh node without waiting a full interval.
	d.publishOwnBinding(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.publishOwnBinding(ctx)
		}
	}
}

// publishOwnBinding issues the DHT provide for /eth/<self> and gossips
// a signed announcement.
func (d *Directory) publishOwnBinding(ctx context.Context) {
	if d.cfg.EnableDHT {
		if err := d.engine.Provide(ctx, ethKeyPrefix+d.self); err != nil {
			d.logger.Debug("dht provide failed", zap.Error(err))
		}
	}

	content, err := json.Marshal(Announcement{
		PeerID:     d.engine.PeerID(),
		Address:    d.self,
		Name:       d.name,
		Multiaddrs: d.engine.Multiaddrs(),
		Timestamp:  time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	now := time.Now().UnixMilli()
	env := &messaging.Envelope{
		MessageID:   messaging.NewMessageID(d.self),
		FromAgentID: d.self,
		Content:     content,
		Timestamp:   now,
		Nonce:       now,
	}
	if err := env.Sign(d.id); err != nil {
		d.logger.Warn("announcement signing failed", zap.Error(err))
		return
	}
	data, err := env.Encode()
	if err != nil {
		return
	}
	if err := d.engine.Publish(ctx, TopicAnnouncements, data); err != nil {
		d.logger.Debug("announcement publish failed", zap.Error(err))
	}
}

// Resolve returns the account address bound to an overlay peer id.
func (d *Directory) Resolve(peerID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	addr, ok := d.peerToAddr[peerID]
	return addr, ok
}

// Snapshot returns a copy of every bound directory entry.
func (d *Directory) Snapshot() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := make([]Entry, 0, len(d.addrToPeer))
	for addr, peerID := range d.addrToPeer {
		maddrs := make([]string, len(d.multiaddrs[addr]))
		copy(maddrs, d.multiaddrs[addr])
		entries = append(entries, Entry{
			Address:    addr,
			PeerID:     peerID,
			Name:       d.names[addr],
			Multiaddrs: maddrs,
			ObservedAt: d.observedAt[addr],
		})
	}
	return entries
}

// ConnectedSince reports when the given peer connected, if it is
// currently tracked.
func (d *Directory) ConnectedSince(peerID string) (time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.connectedSince[peerID]
	return t, ok
}

// Hints returns cached bindings from a previous run, for best-effort
// redial at startup. Hints never enter the live tables.
func (d *Directory) Hints() map[string]CachedBinding {
	if d.cache == nil {
		return nil
	}
	hints, err := d.cache.LoadAll()
	if err != nil {
		d.logger.Debug("peer cache load failed", zap.Error(err))
		return nil
	}
	delete(hints, d.self)
	return hints
}
