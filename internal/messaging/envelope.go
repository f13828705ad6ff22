package messaging

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentmesh/agentmesh/internal/identity"
)

// Envelope is the over-the-wire message object. The signature covers
// the canonical JSON encoding of every other field.
type Envelope struct {
	MessageID      string `json:"messageId"`
	FromAgentID    string `json:"fromAgentId"`
	ToAgentID      string `json:"toAgentId,omitempty"`
	Content        []byte `json:"content"`
	Timestamp      int64  `json:"timestamp"`
	Nonce          int64  `json:"nonce"`
	ConversationID string `json:"conversationId,omitempty"`
	ReplyTo        string `json:"replyTo,omitempty"`
	Signature      string `json:"signature,omitempty"`
}

// wrapper is the outer object published on the gossip topics.
type wrapper struct {
	Message *Envelope `json:"message"`
}

// SigningBytes returns the canonical encoding signed by the sender:
// the envelope's JSON with the signature field cleared.
func (e *Envelope) SigningBytes() ([]byte, error) {
	unsigned := *e
	unsigned.Signature = ""
	return json.Marshal(&unsigned)
}

// Sign computes and attaches the sender's signature.
func (e *Envelope) Sign(id *identity.Identity) error {
	msg, err := e.SigningBytes()
	if err != nil {
		return err
	}
	sig, err := id.Sign(msg)
	if err != nil {
		return err
	}
	e.Signature = hex.EncodeToString(sig)
	return nil
}

// VerifySignature recovers the signer from the envelope signature and
// compares it to FromAgentID, case-insensitively.
func (e *Envelope) VerifySignature() bool {
	sig, err := hex.DecodeString(e.Signature)
	if err != nil {
		return false
	}
	msg, err := e.SigningBytes()
	if err != nil {
		return false
	}
	return identity.Verify(e.FromAgentID, msg, sig)
}

// AddressedTo reports whether the envelope targets the given account
// address. An empty ToAgentID is broadcast intent.
func (e *Envelope) AddressedTo(address string) bool {
	return e.ToAgentID == "" || strings.EqualFold(e.ToAgentID, address)
}

// Encode wraps and serializes the envelope for publishing.
func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(wrapper{Message: e})
}

// DecodeEnvelope parses the outer wrapper, requiring a single message
// field.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("malformed wrapper: %w", err)
	}
	if w.Message == nil {
		return nil, fmt.Errorf("wrapper missing message field")
	}
	return w.Message, nil
}
