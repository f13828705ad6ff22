// Package status periodically publishes a signed node status report and
// retains peer reports with a TTL.
package status

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/messaging"
	"github.com/agentmesh/agentmesh/internal/overlay"
)

// TopicStatus carries signed node status reports.
const TopicStatus = "node-status"

const (
	broadcastInterval = 60 * time.Second
	reportTTL         = 120 * time.Second
)

// Metrics is the telemetry carried in a status report.
type Metrics struct {
	ConnectedPeers   int      `json:"connectedPeers"`
	MessagesSent     int64    `json:"messagesSent"`
	MessagesReceived int64    `json:"messagesReceived"`
	UptimeSec        int64    `json:"uptimeSec"`
	RoutingTableSize int      `json:"routingTableSize"`
	Multiaddrs       []string `json:"multiaddrs"`
	IsBootstrap      bool     `json:"isBootstrap"`
	LastMessageMs    int64    `json:"lastMessageMs"`
}

// Report is the decoded content of a status message.
type Report struct {
	PeerID  string  `json:"peerId"`
	Metrics Metrics `json:"metrics"`
}

// PeerReport is a retained report together with its arrival time.
type PeerReport struct {
	Address    string
	Report     Report
	ReceivedAt time.Time
}

// Broadcaster publishes this node's report every minute and retains
// peer reports for two.
type Broadcaster struct {
	id          *identity.Identity
	engine      *overlay.Engine
	msg         *messaging.Service
	isBootstrap bool
	startedAt   time.Time
	logger      *zap.Logger

	mu      sync.Mutex
	reports map[string]PeerReport
}

// New creates a Broadcaster.
func New(id *identity.Identity, engine *overlay.Engine, msg *messaging.Service, isBootstrap bool, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		id:          id,
		engine:      engine,
		msg:         msg,
		isBootstrap: isBootstrap,
		startedAt:   time.Now(),
		logger:      logger,
		reports:     make(map[string]PeerReport),
	}
}

// Start subscribes to the status topic and launches the broadcast loop.
func (b *Broadcaster) Start(ctx context.Context) error {
	if err := b.engine.Subscribe(ctx, TopicStatus, b.HandleStatus); err != nil {
		return err
	}
	go b.loop(ctx)
	return nil
}

func (b *Broadcaster) loop(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.broadcast(ctx)
		}
	}
}

// broadcast publishes one signed status envelope.
func (b *Broadcaster) broadcast(ctx context.Context) {
	content, err := json.Marshal(Report{
		PeerID: b.engine.PeerID(),
		Metrics: Metrics{
			ConnectedPeers:   len(b.engine.ConnectedPeers()),
			MessagesSent:     b.msg.Sent(),
			MessagesReceived: b.msg.Received(),
			UptimeSec:        int64(time.Since(b.startedAt).Seconds()),
			RoutingTableSize: b.engine.RoutingTableSize(),
			Multiaddrs:       b.engine.Multiaddrs(),
			IsBootstrap:      b.isBootstrap,
			LastMessageMs:    b.msg.LastMessageMs(),
		},
	})
	if err != nil {
		return
	}
	now := time.Now().UnixMilli()
	env := &messaging.Envelope{
		MessageID:   messaging.NewMessageID(b.id.Address()),
		FromAgentID: b.id.Address(),
		Content:     content,
		Timestamp:   now,
		Nonce:       now,
	}
	if err := env.Sign(b.id); err != nil {
		b.logger.Warn("status signing failed", zap.Error(err))
		return
	}
	data, err := env.Encode()
	if err != nil {
		return
	}
	if err := b.engine.Publish(ctx, TopicStatus, data); err != nil {
		b.logger.Debug("status publish failed", zap.Error(err))
	}
}

// HandleStatus verifies and retains one peer status report.
func (b *Broadcaster) HandleStatus(from peer.ID, data []byte) {
	env, err := messaging.DecodeEnvelope(data)
	if err != nil {
		return
	}
	if !env.VerifySignature() {
		b.logger.Debug("status signature invalid", zap.String("from", env.FromAgentID))
		return
	}
	var report Report
	if err := json.Unmarshal(env.Content, &report); err != nil {
		return
	}
	addr := strings.ToLower(env.FromAgentID)
	if addr == b.id.Address() {
		return
	}
	b.store(addr, report, time.Now())
}

func (b *Broadcaster) store(addr string, report Report, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports[addr] = PeerReport{Address: addr, Report: report, ReceivedAt: at}
}

// Reports purges entries older than the TTL and returns the remainder.
func (b *Broadcaster) Reports() []PeerReport {
	cutoff := time.Now().Add(-reportTTL)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]PeerReport, 0, len(b.reports))
	for addr, r := range b.reports {
		if r.ReceivedAt.Before(cutoff) {
			delete(b.reports, addr)
			continue
		}
		out = append(out, r)
	}
	return out
}
