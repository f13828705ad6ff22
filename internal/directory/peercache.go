package directory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// CachedBinding is a directory binding persisted across restarts. A
// cached binding is a low-trust hint: it seeds dial attempts but never
// satisfies a lookup by itself.
type CachedBinding struct {
	PeerID     string   `json:"peerId"`
	Name       string   `json:"name,omitempty"`
	Multiaddrs []string `json:"multiaddrs,omitempty"`
}

// PeerCache is a Pebble-backed store of verified bindings.
type PeerCache struct {
	db     *pebble.DB
	logger *zap.Logger
}

// OpenPeerCache opens (or creates) the cache at path.
func OpenPeerCache(path string, logger *zap.Logger) (*PeerCache, error) {
	db, err := pebble.Open(path, &pebble.Options{Logger: &pebbleLogger{logger}})
	if err != nil {
		return nil, fmt.Errorf("pebble open %s: %w", path, err)
	}
	logger.Info("peer cache opened", zap.String("path", path))
	return &PeerCache{db: db, logger: logger}, nil
}

// Put stores one binding under its lowercase account address.
func (c *PeerCache) Put(address string, b CachedBinding) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := c.db.Set([]byte(address), data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

// Get retrieves a binding by address.
func (c *PeerCache) Get(address string) (CachedBinding, bool, error) {
	data, closer, err := c.db.Get([]byte(address))
	if errors.Is(err, pebble.ErrNotFound) {
		return CachedBinding{}, false, nil
	}
	if err != nil {
		return CachedBinding{}, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	var b CachedBinding
	if err := json.Unmarshal(data, &b); err != nil {
		return CachedBinding{}, false, fmt.Errorf("unmarshal: %w", err)
	}
	return b, true, nil
}

// LoadAll returns every cached binding keyed by address.
func (c *PeerCache) LoadAll() (map[string]CachedBinding, error) {
	iter, err := c.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	defer iter.Close()

	out := make(map[string]CachedBinding)
	for iter.First(); iter.Valid(); iter.Next() {
		var b CachedBinding
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			continue
		}
		out[string(iter.Key())] = b
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close flushes and closes the database.
func (c *PeerCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// pebbleLogger adapts zap.Logger to the pebble.Logger interface.
type pebbleLogger struct {
	z *zap.Logger
}

func (l *pebbleLogger) Infof(format string, args ...any) {
	l.z.Sugar().Infof(format, args...)
}

func (l *pebbleLogger) Fatalf(format string, args ...any) {
	l.z.Sugar().Fatalf(format, args...)
}
