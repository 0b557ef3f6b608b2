// Package inventory persists kept auras as one opaque blob under a fixed key.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/xtding233/aura-gacha/internal/aura"
)

// DefaultKey names the blob holding the inventory.
const DefaultKey = "auraInventory"

var ErrCorruptBlob = errors.New("inventory blob is corrupt")

// Store loads and saves the whole inventory.
// Load reports found=false when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (auras []aura.Aura, found bool, err error)
	Save(ctx context.Context, auras []aura.Aura) error
}

// BlobStore is a key-value backend holding raw bytes.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// KeyedStore serializes the inventory into a single BlobStore entry.
type KeyedStore struct {
	blobs BlobStore
	key   string
}

// NewKeyedStore stores the inventory in blobs under key (DefaultKey when empty).
func NewKeyedStore(blobs BlobStore, key string) *KeyedStore {
	if key == "" {
		key = DefaultKey
	}
	return &KeyedStore{blobs: blobs, key: key}
}

func (s *KeyedStore) Key() string { return s.key }

func (s *KeyedStore) Load(ctx context.Context) ([]aura.Aura, bool, error) {
	b, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return nil, false, nil
	}
	auras, err := Decode(b)
	if err != nil {
		return nil, false, err
	}
	return auras, true, nil
}

func (s *KeyedStore) Save(ctx context.Context, auras []aura.Aura) error {
	b, err := Encode(auras)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}
