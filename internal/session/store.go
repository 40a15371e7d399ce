package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/and161185/gas2door/internal/model"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

var ErrCorruptSession = errors.New("stored session cannot be opened")

// Store persists one session per visitor. Load returns nil, nil when the
// visitor has no session. Only Context writes to a Store.
type Store interface {
	Load(ctx context.Context, key string) (*model.Session, error)
	Save(ctx context.Context, key string, s *model.Session) error
	Clear(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = *s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key)
	return nil
}

const nonceSize = 24

// Codec seals sessions at rest; access tokens are bearer credentials.
type Codec struct {
	key [32]byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	c := &Codec{}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("gas2door session v1"))
	if _, err := io.ReadFull(r, c.key[:]); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return c, nil
}

func (c *Codec) Encode(s *model.Session) ([]byte, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("session nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &c.key), nil
}

func (c *Codec) Decode(sealed []byte) (*model.Session, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrCorruptSession
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrCorruptSession
	}

	var s model.Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return nil, ErrCorruptSession
	}
	return &s, nil
}
