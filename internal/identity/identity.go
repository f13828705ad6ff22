// Package identity derives the node's account identity from its secret
// and provides signing, verification, and ECIES payload encryption.
package identity

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
)

// ErrNotForMe is returned by Decrypt when the ciphertext does not
// combine with our decryption key. Callers treat this as "the payload
// may have been sent as plaintext" and fall back accordingly.
var ErrNotForMe = errors.New("ciphertext not addressed to this identity")

// Identity holds the node's secp256k1 keypair. The secret leaves this
// package only through KeyBytes.
type Identity struct {
	privKey  *ecdsa.PrivateKey
	eciesKey *ecies.PrivateKey
	address  string
}

// FromHex parses a 32-byte hex secret (optional 0x prefix) and derives
// the account identity.
func FromHex(secret string) (*Identity, error) {
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(secret, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(keyBytes))
	}
	priv, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &Identity{
		privKey:  priv,
		eciesKey: ecies.ImportECDSA(priv),
		address:  strings.ToLower(ethcrypto.PubkeyToAddress(priv.PublicKey).Hex()),
	}, nil
}

// Address returns the lowercase hex account address.
func (id *Identity) Address() string {
	return id.address
}

// PublicKeyBytes returns the uncompressed 65-byte encryption public key.
func (id *Identity) PublicKeyBytes() []byte {
	return ethcrypto.FromECDSAPub(&id.privKey.PublicKey)
}

// PublicKeyHex returns the encryption public key hex-encoded for
// transport in registry metadata.
func (id *Identity) PublicKeyHex() string {
	return hex.EncodeToString(id.PublicKeyBytes())
}

// KeyBytes returns the raw 32-byte secret. Used only to build the
// registry transaction signer; never logged or transmitted.
func (id *Identity) KeyBytes() []byte {
	return ethcrypto.FromECDSA(id.privKey)
}

// Sign signs keccak256(msg) and returns a 65-byte signature with the
// recovery byte normalized to 27/28.
func (id *Identity) Sign(msg []byte) ([]byte, error) {
	hash := ethcrypto.Keccak256Hash(msg)
	sig, err := ethcrypto.Sign(hash.Bytes(), id.privKey)
	if err != nil {
		return nil, err
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return sig, nil
}

// Verify recovers the signer of msg from sig and compares it to the
// claimed address, case-insensitively.
func Verify(address string, msg, sig []byte) bool {
	if len(sig) != 65 {
		return false
	}
	norm := make([]byte, 65)
	copy(norm, sig)
	if norm[64] >= 27 {
		norm[64] -= 27
	}
	hash := ethcrypto.Keccak256Hash(msg)
	pubKey, err := ethcrypto.SigToPub(hash.Bytes(), norm)
	if err != nil {
		return false
	}
	recovered := strings.ToLower(ethcrypto.PubkeyToAddress(*pubKey).Hex())
	return recovered == strings.ToLower(address)
}

// Encrypt produces a self-contained ECIES ciphertext for the recipient's
// uncompressed 65-byte public key.
func Encrypt(recipientPub, plaintext []byte) ([]byte, error) {
	pub, err := ethcrypto.UnmarshalPubkey(recipientPub)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient public key: %w", err)
	}
	return ecies.Encrypt(rand.Reader, ecies.ImportECDSAPublic(pub), plaintext, nil, nil)
}

// Decrypt opens an ECIES ciphertext addressed to this identity. Returns
// ErrNotForMe when the ciphertext's ephemeral key does not combine with
// our key or the payload is not a ciphertext at all.
func (id *Identity) Decrypt(ciphertext []byte) ([]byte, error) {
	plain, err := id.eciesKey.Decrypt(ciphertext, nil, nil)
	if err != nil {
		return nil, ErrNotForMe
	}
	return plain, nil
}
