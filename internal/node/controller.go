// Package node provides the bootstrap pipeline for agentmesh nodes.
package node

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/agentmesh/agentmesh/internal/api/grpc/servers"
	"github.com/agentmesh/agentmesh/internal/api/rest"
	"github.com/agentmesh/agentmesh/internal/config"
	"github.com/agentmesh/agentmesh/internal/directory"
	"github.com/agentmesh/agentmesh/internal/events"
	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
	"github.com/agentmesh/agentmesh/internal/overlay"
	"github.com/agentmesh/agentmesh/internal/policy"
	"github.com/agentmesh/agentmesh/internal/registry"
	"github.com/agentmesh/agentmesh/internal/status"
)

// Controller bootstraps the node, wires all components, and runs until
// shutdown.
type Controller struct {
	cfg    *config.Config
	logger *zap.Logger

	id       *identity.Identity
	role     policy.Role
	rcfg     policy.RoleConfig
	engine   *overlay.Engine
	dir      *directory.Directory
	msg      *messaging.Service
	reporter *status.Broadcaster
	bus      *events.Bus
	reg      registry.Registry
	cache    *directory.PeerCache
	grpcSrv  *grpc.Server

	lc       lifecycle
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewController creates a Controller.
func NewController(cfg *config.Config, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Run bootstraps all components and blocks until SIGINT/SIGTERM, a
// control-plane Stop, or context cancellation. A non-nil error means
// the process should exit non-zero.
func (c *Controller) Run(ctx context.Context) error {
	c.lc.transition(StateStarting)

	id, err := identity.FromHex(c.cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	c.id = id

	bootstrapEntry, isBootstrap := overlay.FindBootstrap(c.cfg.Network, id.Address(), c.cfg.AgentName)
	if isBootstrap {
		c.role = policy.RoleBootstrap
	} else {
		c.role = policy.ParseRole(c.cfg.NodeType)
	}
	c.rcfg = policy.ConfigForRole(c.role)

	c.logger.Info("starting agentmesh node",
		zap.String("address", id.Address()),
		zap.String("role", c.role.String()),
		zap.String("network", c.cfg.Network),
	)

	// Registration is write-once at startup; "already registered" is
	// success, anything else is fatal.
	if c.cfg.RegistryAddress != "" && c.cfg.RPCURL != "" {
		regClient, err := registry.Dial(ctx, c.cfg.RPCURL, c.cfg.RegistryAddress, id, c.logger)
		if err != nil {
			return fmt.Errorf("registry: %w", err)
		}
		defer regClient.Close()
		c.reg = regClient
		metadata := registry.BuildMetadata(id.PublicKeyHex())
		if err := regClient.RegisterSelf(ctx, c.cfg.AgentName, metadata); err != nil {
			return fmt.Errorf("registration: %w", err)
		}
	}

	if c.cfg.PeerCachePath != "" {
		cache, err := directory.OpenPeerCache(c.cfg.PeerCachePath, c.logger)
		if err != nil {
			c.logger.Warn("peer cache unavailable", zap.Error(err))
		} else {
			c.cache = cache
			defer cache.Close()
		}
	}

	var pinnedKey []byte
	if isBootstrap && c.cfg.BootstrapPrivateKey != "" {
		pinnedKey, err = hex.DecodeString(strings.TrimPrefix(c.cfg.BootstrapPrivateKey, "0x"))
		if err != nil {
			return fmt.Errorf("bootstrap key: %w", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.engine = overlay.New(overlay.Config{
		Port:        c.cfg.Port,
		Network:     c.cfg.Network,
		IsBootstrap: isBootstrap,
		Hostname:    bootstrapEntry.Hostname,
		PinnedKey:   pinnedKey,
		Policy:      c.rcfg,
	}, c.logger)

	c.bus = events.NewBus()
	c.dir = directory.New(id, c.cfg.AgentName, c.engine, c.rcfg, c.cache, c.logger)

	var keys messaging.KeySource
	if c.reg != nil {
		keys = c.reg
	}
	c.msg = messaging.New(id, c.engine, c.dir, keys, c.bus, c.cfg.UseEncryption, c.logger)
	c.reporter = status.New(id, c.engine, c.msg, isBootstrap, c.logger)

	c.engine.OnPeerConnected(func(pid peer.ID) {
		c.dir.HandleConnect(pid)
		c.bus.Publish(events.Event{Kind: events.KindPeerConnected, PeerID: pid.String()})
	})

	if err := c.engine.Start(runCtx); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	defer c.engine.Close()

	if err := c.dir.Start(runCtx); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if c.rcfg.EnableGossip {
		if err := c.msg.Start(runCtx); err != nil {
			return fmt.Errorf("messaging: %w", err)
		}
		if err := c.reporter.Start(runCtx); err != nil {
			return fmt.Errorf("status: %w", err)
		}
	}

	go c.redialHints(runCtx)

	grpcServer, err := servers.NewAgentServiceServer(c, c.logger).Serve(c.cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("control plane: %w", err)
	}
	c.grpcSrv = grpcServer

	if c.cfg.RESTAddr != "" {
		restSrv := rest.New(c.engine, c.dir, c.msg, c.reporter, id.Address(), c.logger)
		go func() {
			if err := restSrv.Start(c.cfg.RESTAddr); err != nil {
				c.logger.Warn("REST server stopped", zap.Error(err))
			}
		}()
	}

	c.lc.transition(StateRunning)
	c.bus.Publish(events.Event{Kind: events.KindReady, PeerID: c.engine.PeerID()})
	c.logger.Info("node running",
		zap.String("peerID", c.engine.PeerID()),
		zap.Strings("addrs", c.engine.Multiaddrs()),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		c.logger.Info("shutdown signal received")
	case <-c.stopCh:
		c.logger.Info("stop requested")
	case <-ctx.Done():
		c.logger.Info("context cancelled")
	}

	c.lc.transition(StateStopping)
	cancel()
	// Closing the bus ends every Connect stream, which GracefulStop
	// would otherwise wait on.
	c.bus.Close()
	c.grpcSrv.GracefulStop()
	c.lc.transition(StateStopped)
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.lc.current()
}

// redialHints dials bindings cached from a previous run, best effort.
// Hints only seed connectivity; the live tables fill from verified
// signals.
func (c *Controller) redialHints(ctx context.Context) {
	for addr, hint := range c.dir.Hints() {
		for _, s := range hint.Multiaddrs {
			maddr, err := multiaddr.NewMultiaddr(s)
			if err != nil {
				continue
			}
			info, err := peer.AddrInfoFromP2pAddr(maddr)
			if err != nil {
				continue
			}
			if err := c.engine.Dial(ctx, *info); err == nil {
				c.logger.Debug("redialed cached peer", zap.String("address", addr))
				break
			}
		}
	}
}

// --- servers.AgentHandler ---

// PeerID returns the overlay peer id.
func (c *Controller) PeerID() string {
	return c.engine.PeerID()
}

// Send publishes one message via the messaging layer.
func (c *Controller) Send(ctx context.Context, to string, content []byte) (string, error) {
	return c.msg.Send(ctx, to, content, "", "")
}

// Agents builds the ListAgents snapshot from the directory.
func (c *Controller) Agents() []servers.AgentSummary {
	entries := c.dir.Snapshot()
	out := make([]servers.AgentSummary, 0, len(entries))
	for _, e := range entries {
		var connectedSince int64
		if t, ok := c.dir.ConnectedSince(e.PeerID); ok {
			connectedSince = t.Unix()
		}
		out = append(out, servers.AgentSummary{
			AgentID:        e.Address,
			PeerID:         e.PeerID,
			AgentName:      e.Name,
			ConnectedSince: connectedSince,
		})
	}
	return out
}

// Subscribe attaches a new event stream to the bus.
func (c *Controller) Subscribe() (<-chan events.Event, func()) {
	return c.bus.Subscribe()
}

// Shutdown triggers cooperative shutdown; safe to call more than once.
func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
