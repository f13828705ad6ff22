package registry

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublicKey(t *testing.T) {
	key, err := ParsePublicKey(`{"publicKey":"04aabbcc"}`)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0xaa, 0xbb, 0xcc}, key)

	// 0x prefix is tolerated.
	key, err = ParsePublicKey(`{"publicKey":"0x04aabbcc"}`)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0xaa, 0xbb, 0xcc}, key)
}

func TestParsePublicKeyMalformed(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`{}`,
		`{"publicKey":""}`,
		`{"publicKey":"zzzz"}`,
	}
	for _, metadata := range cases {
		_, err := ParsePublicKey(metadata)
		assert.ErrorIs(t, err, ErrMalformedMetadata, "metadata %q", metadata)
	}
}

func TestBuildMetadataRoundTrip(t *testing.T) {
	metadata := BuildMetadata("04aabbcc")
	key, err := ParsePublicKey(metadata)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0xaa, 0xbb, 0xcc}, key)
}

func TestEligible(t *testing.T) {
	assert.True(t, AgentRecord{IsActive: true}.Eligible())
	assert.False(t, AgentRecord{IsActive: true, IsBlocked: true}.Eligible())
	assert.False(t, AgentRecord{IsActive: false}.Eligible())
	assert.False(t, AgentRecord{Reputation: big.NewInt(100)}.Eligible())
}

func TestIsAlreadyRegistered(t *testing.T) {
	assert.True(t, isAlreadyRegistered(errors.New("execution reverted: Agent already registered")))
	assert.False(t, isAlreadyRegistered(errors.New("insufficient funds")))
}
