package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mkoval/claimflow/internal/model"
)

// MemoryStore keeps claims in process memory. Used standalone in tests and
// local development, and as the read-through layer of LayeredStore.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get loads the claim for the key.
func (s *MemoryStore) Get(key string) (*model.Claim, error) {
	if val, found := s.cache.Get(key); found {
		return val.(*model.Claim), nil
	}
	return nil, ErrNotFound
}

// Put stores the claim with the default TTL.
func (s *MemoryStore) Put(key string, claim *model.Claim) error {
	claim.LastUpdated = time.Now().UTC()
	s.cache.SetDefault(key, claim)
	return nil
}

// AppendTurn appends a conversation turn, creating the claim if needed.
func (s *MemoryStore) AppendTurn(key string, turn model.ConversationTurn) error {
	claim, err := getOrCreate(s, key, time.Now().UTC())
	if err != nil {
		return err
	}
	claim.Conversation = append(claim.Conversation, turn)
	return s.Put(key, claim)
}

// GetOrCreateThread returns the stable thread handle for a specialist.
func (s *MemoryStore) GetOrCreateThread(key string, specialistID string) (string, error) {
	claim, err := getOrCreate(s, key, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if handle, ok := claim.AgentThreads[specialistID]; ok {
		return handle, nil
	}

	handle := NewThreadHandle()
	if claim.AgentThreads == nil {
		claim.AgentThreads = make(map[string]string)
	}
	claim.AgentThreads[specialistID] = handle
	if err := s.Put(key, claim); err != nil {
		return "", err
	}
	return handle, nil
}
