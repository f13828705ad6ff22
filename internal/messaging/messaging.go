// Package messaging constructs, signs, and publishes application
// messages on the gossip mesh, and verifies, decrypts, and filters
// inbound ones.
package messaging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/events"
	"github.com/agentmesh/agentmesh/internal/identity"
	"github.com/agentmesh/agentmesh/internal/overlay"
)

// TopicMessages carries application messages.
const TopicMessages = "agent-messages"

var (
	// ErrNoRoute means the recipient could not be resolved to an
	// overlay peer.
	ErrNoRoute = errors.New("no route to agent")
	// ErrPublishFailed wraps transport errors on publish.
	ErrPublishFailed = errors.New("publish failed")
	// ErrEncryption wraps failures to encrypt for the recipient.
	ErrEncryption = errors.New("encryption failed")
)

// Resolver resolves account addresses to overlay peer ids. Satisfied by
// the directory.
type Resolver interface {
	Lookup(ctx context.Context, address string) (string, error)
}

// KeySource fetches a recipient's encryption public key. Satisfied by
// the registry client.
type KeySource interface {
	GetPublicKey(ctx context.Context, address string) ([]byte, error)
}

// Service is the messaging component.
type Service struct {
	id            *identity.Identity
	engine        *overlay.Engine
	resolver      Resolver
	keys          KeySource
	bus           *events.Bus
	useEncryption bool
	logger        *zap.Logger

	sent          atomic.Int64
	received      atomic.Int64
	dropped       atomic.Int64
	lastMessageMs atomic.Int64
}

// New creates the messaging service. keys may be nil when encryption is
// disabled.
func New(id *identity.Identity, engine *overlay.Engine, resolver Resolver, keys KeySource, bus *events.Bus, useEncryption bool, logger *zap.Logger) *Service {
	return &Service{
		id:            id,
		engine:        engine,
		resolver:      resolver,
		keys:          keys,
		bus:           bus,
		useEncryption: useEncryption,
		logger:        logger,
	}
}

// Start subscribes to the application topic.
func (s *Service) Start(ctx context.Context) error {
	return s.engine.Subscribe(ctx, TopicMessages, s.HandleMessage)
}

// Send resolves, optionally encrypts, signs, and publishes one message.
// Returns the generated message id.
func (s *Service) Send(ctx context.Context, to string, content []byte, conversationID, replyTo string) (string, error) {
	to = strings.ToLower(to)

	peerID, err := s.resolver.Lookup(ctx, to)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoRoute, to)
	}

	// Best effort: a direct connection shortens the gossip path, but
	// the mesh routes without it.
	if pid, err := peer.Decode(peerID); err == nil {
		if err := s.engine.Dial(ctx, s.engine.AddrInfoForPeer(pid)); err != nil {
			s.logger.Debug("direct dial failed", zap.String("peer", peerID), zap.Error(err))
		}
	}

	payload := content
	if s.useEncryption && s.keys != nil {
		pub, err := s.keys.GetPublicKey(ctx, to)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncryption, err)
		}
		payload, err = identity.Encrypt(pub, content)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncryption, err)
		}
	}

	now := time.Now().UnixMilli()
	env := &Envelope{
		MessageID:      NewMessageID(s.id.Address()),
		FromAgentID:    s.id.Address(),
		ToAgentID:      to,
		Content:        payload,
		Timestamp:      now,
		Nonce:          now,
		ConversationID: conversationID,
		ReplyTo:        replyTo,
	}
	if err := env.Sign(s.id); err != nil {
		return "", err
	}
	data, err := env.Encode()
	if err != nil {
		return "", err
	}
	if err := s.engine.Publish(ctx, TopicMessages, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	s.sent.Add(1)
	s.lastMessageMs.Store(now)
	return env.MessageID, nil
}

// HandleMessage runs the receive pipeline: unwrap, verify, filter,
// decrypt, deliver.
func (s *Service) HandleMessage(from peer.ID, data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		s.dropped.Add(1)
		return
	}
	// Signature verification supersedes any registry check; registry
	// consultation is advisory for display and blocking.
	if !env.VerifySignature() {
		s.dropped.Add(1)
		s.logger.Debug("message signature invalid",
			zap.String("from", env.FromAgentID), zap.String("messageId", env.MessageID))
		return
	}
	if !env.AddressedTo(s.id.Address()) {
		// Not for us. Dropped silently; the mesh routes to the real
		// recipient.
		return
	}

	content, err := s.id.Decrypt(env.Content)
	if err != nil {
		// The encoding is not self-describing: a failed decryption
		// means the sender may not encrypt at all. Fall back to
		// interpreting the payload as plaintext.
		if !errors.Is(err, identity.ErrNotForMe) {
			s.dropped.Add(1)
			return
		}
		content = env.Content
	}

	s.received.Add(1)
	s.lastMessageMs.Store(time.Now().UnixMilli())
	s.bus.Publish(events.Event{
		Kind: events.KindMessage,
		Msg: &events.Delivery{
			MessageID: env.MessageID,
			From:      strings.ToLower(env.FromAgentID),
			To:        strings.ToLower(env.ToAgentID),
			Content:   content,
			Timestamp: env.Timestamp,
		},
	})
}

// Sent returns the number of messages published by this node.
func (s *Service) Sent() int64 { return s.sent.Load() }

// Received returns the number of messages delivered locally.
func (s *Service) Received() int64 { return s.received.Load() }

// Dropped returns the number of inbound messages rejected.
func (s *Service) Dropped() int64 { return s.dropped.Load() }

// LastMessageMs returns the timestamp of the last sent or delivered
// message.
func (s *Service) LastMessageMs() int64 { return s.lastMessageMs.Load() }

// NewMessageID builds a globally unique message id for the sender.
func NewMessageID(address string) string {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return fmt.Sprintf("%s-%d-%s", address, time.Now().UnixMilli(), hex.EncodeToString(buf[:]))
}
