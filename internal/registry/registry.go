// Package registry is the read-mostly client for the on-chain agent
// registry contract.
package registry

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/identity"
)

const agentRegistryABI = `[
  {"type":"function","name":"isRegistered","stateMutability":"view","inputs":[{"name":"agent","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"getAgentInfo","stateMutability":"view","inputs":[{"name":"agent","type":"address"}],"outputs":[{"name":"name","type":"string"},{"name":"metadata","type":"string"},{"name":"reputation","type":"uint256"},{"name":"isActive","type":"bool"},{"name":"isBlocked","type":"bool"},{"name":"registrationTime","type":"uint256"}]},
  {"type":"function","name":"registerAgent","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"metadata","type":"string"}],"outputs":[]}
]`

var (
	// ErrNotFound means the address is not registered.
	ErrNotFound = errors.New("agent not registered")
	// ErrMalformedMetadata means the agent's metadata has no parsable
	// publicKey.
	ErrMalformedMetadata = errors.New("malformed agent metadata")
)

// AgentRecord is the on-chain record for one agent.
type AgentRecord struct {
	Name             string
	Metadata         string
	Reputation       *big.Int
	IsActive         bool
	IsBlocked        bool
	RegistrationTime int64
}

// Eligible reports whether the agent may participate in the overlay.
func (r AgentRecord) Eligible() bool {
	return r.IsActive && !r.IsBlocked
}

// Metadata is the conventional shape of the free-form metadata JSON.
type Metadata struct {
	PublicKey string `json:"publicKey"`
}

// BuildMetadata serializes the conventional metadata for registration.
func BuildMetadata(publicKeyHex string) string {
	data, _ := json.Marshal(Metadata{PublicKey: publicKeyHex})
	return string(data)
}

// Registry is the contract surface the node consumes. Extracted so
// tests can stub the chain.
type Registry interface {
	IsRegistered(ctx context.Context, address string) (bool, error)
	GetAgentInfo(ctx context.Context, address string) (AgentRecord, error)
	GetPublicKey(ctx context.Context, address string) ([]byte, error)
	RegisterSelf(ctx context.Context, name, metadata string) error
}

// Client talks to the registry contract over JSON-RPC. It caches
// nothing authoritative.
type Client struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	id       *identity.Identity
	chainID  *big.Int
	logger   *zap.Logger
}

// Dial connects to the RPC endpoint and binds the contract.
func Dial(ctx context.Context, rpcURL, contractAddress string, id *identity.Identity, logger *zap.Logger) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpc dial: %w", err)
	}
	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(agentRegistryABI))
	if err != nil {
		return nil, fmt.Errorf("registry abi: %w", err)
	}
	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsed, eth, eth, eth)
	return &Client{eth: eth, contract: contract, id: id, chainID: chainID, logger: logger}, nil
}

// IsRegistered reports whether the address is in the registry. No
// built-in retry; the caller decides.
func (c *Client) IsRegistered(ctx context.Context, address string) (bool, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isRegistered", common.HexToAddress(address))
	if err != nil {
		return false, fmt.Errorf("isRegistered: %w", err)
	}
	return out[0].(bool), nil
}

// GetAgentInfo fetches the registry record for an address.
func (c *Client) GetAgentInfo(ctx context.Context, address string) (AgentRecord, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAgentInfo", common.HexToAddress(address))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "execution reverted") {
			return AgentRecord{}, ErrNotFound
		}
		return AgentRecord{}, fmt.Errorf("getAgentInfo: %w", err)
	}
	rec := AgentRecord{
		Name:             out[0].(string),
		Metadata:         out[1].(string),
		Reputation:       out[2].(*big.Int),
		IsActive:         out[3].(bool),
		IsBlocked:        out[4].(bool),
		RegistrationTime: out[5].(*big.Int).Int64(),
	}
	if rec.RegistrationTime == 0 {
		return AgentRecord{}, ErrNotFound
	}
	return rec, nil
}

// GetPublicKey parses metadata.publicKey as a hex-encoded uncompressed
// curve point.
func (c *Client) GetPublicKey(ctx context.Context, address string) ([]byte, error) {
	rec, err := c.GetAgentInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	return ParsePublicKey(rec.Metadata)
}

// ParsePublicKey extracts the encryption public key from a metadata
// JSON string.
func ParsePublicKey(metadata string) ([]byte, error) {
	var md Metadata
	if err := json.Unmarshal([]byte(metadata), &md); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if md.PublicKey == "" {
		return nil, fmt.Errorf("%w: missing publicKey", ErrMalformedMetadata)
	}
	key, err := hex.DecodeString(strings.TrimPrefix(md.PublicKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return key, nil
}

// RegisterSelf writes this agent's registration once at startup and
// waits synchronously for transaction inclusion. An "already
// registered" response is success.
func (c *Client) RegisterSelf(ctx context.Context, name, metadata string) error {
	registered, err := c.IsRegistered(ctx, c.id.Address())
	if err == nil && registered {
		c.logger.Info("agent already registered", zap.String("address", c.id.Address()))
		return nil
	}

	priv, err := ethcrypto.ToECDSA(c.id.KeyBytes())
	if err != nil {
		return fmt.Errorf("transactor key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(priv, c.chainID)
	if err != nil {
		return fmt.Errorf("transactor: %w", err)
	}
	auth.Context = ctx

	tx, err := c.contract.Transact(auth, "registerAgent", name, metadata)
	if err != nil {
		if isAlreadyRegistered(err) {
			return nil
		}
		return fmt.Errorf("registerAgent: %w", err)
	}
	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return fmt.Errorf("registerAgent inclusion: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("registerAgent reverted: tx %s", tx.Hash().Hex())
	}
	c.logger.Info("agent registered",
		zap.String("address", c.id.Address()), zap.String("tx", tx.Hash().Hex()))
	return nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

func isAlreadyRegistered(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already registered")
}
