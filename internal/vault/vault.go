// Package vault is the encrypted persistence adapter: it serializes whole
// collections to JSON, seals them with the derived key, and stores the
// resulting blobs in the durable key-value store, one blob per collection.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/cryptox"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/storage"
)

// Durable storage keys, one per logical collection.
const (
	KeyIdentities = "identities_encrypted"
	KeyLessons    = "lessons_encrypted"
)

// ErrNotLoaded is returned by Save when the collection has not been loaded
// yet. Writing before the initial load could overwrite durable data with an
// empty in-memory collection.
var ErrNotLoaded = errors.New("collection not loaded")

// Vault wraps the crypto provider and the KV store. Safe for concurrent use.
type Vault struct {
	kv     storage.Repository
	crypto *cryptox.Provider
	log    logging.Logger

	mu     sync.Mutex
	loaded map[string]bool
}

func New(kv storage.Repository, crypto *cryptox.Provider, log logging.Logger) *Vault {
	return &Vault{
		kv:     kv,
		crypto: crypto,
		log:    log,
		loaded: make(map[string]bool),
	}
}

// Load reads and decrypts the blob stored under key into v. When the blob
// is absent or fails to decrypt, v is populated with a deep copy of def
// instead, so callers never see a nil collection and never see an error
// for bad ciphertext. Storage I/O errors are returned as-is.
func (vt *Vault) Load(ctx context.Context, key string, v any, def any) error {
	blob, err := vt.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("vault load %s: %w", key, err)
	}

	if blob == nil {
		if err := copyDefault(def, v); err != nil {
			return fmt.Errorf("vault load %s: %w", key, err)
		}
		vt.markLoaded(key)
		return nil
	}

	if err := vt.crypto.Decrypt(string(blob), v); err != nil {
		if !errors.Is(err, common.ErrCryptoFailure) {
			return fmt.Errorf("vault load %s: %w", key, err)
		}
		vt.log.Warn(ctx, "stored blob unreadable, falling back to defaults", "key", key)
		if err := copyDefault(def, v); err != nil {
			return fmt.Errorf("vault load %s: %w", key, err)
		}
	}

	vt.markLoaded(key)
	return nil
}

// Save serializes v, encrypts it and overwrites the blob under key. It
// refuses to run before the initial Load of that key.
func (vt *Vault) Save(ctx context.Context, key string, v any) error {
	vt.mu.Lock()
	ok := vt.loaded[key]
	vt.mu.Unlock()
	if !ok {
		return fmt.Errorf("vault save %s: %w", key, ErrNotLoaded)
	}

	blob, err := vt.crypto.Encrypt(v)
	if err != nil {
		return fmt.Errorf("vault save %s: %w", key, err)
	}

	if err := vt.kv.Set(ctx, key, []byte(blob)); err != nil {
		return fmt.Errorf("vault save %s: %w", key, err)
	}
	return nil
}

func (vt *Vault) markLoaded(key string) {
	vt.mu.Lock()
	vt.loaded[key] = true
	vt.mu.Unlock()
}

// copyDefault deep-copies def into v through JSON so the caller never
// mutates the shared seed dataset.
func copyDefault(def, v any) error {
	data, err := json.Marshal(def)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
