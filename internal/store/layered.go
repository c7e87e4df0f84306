package store

import (
	"github.com/mkoval/claimflow/internal/model"
)

// LayeredStore combines the in-memory store with the file store. Reads check
// memory first and fall back to disk, promoting hits back into memory; writes
// go to both layers so a restart loses nothing.
type LayeredStore struct {
	memory *MemoryStore
	file   *FileStore
}

// NewLayeredStore creates a layered store with memory in front of disk.
func NewLayeredStore(memory *MemoryStore, file *FileStore) *LayeredStore {
	return &LayeredStore{
		memory: memory,
		file:   file,
	}
}

// Get loads the claim, checking memory first and then disk.
func (s *LayeredStore) Get(key string) (*model.Claim, error) {
	if claim, err := s.memory.Get(key); err == nil {
		return claim, nil
	}

	claim, err := s.file.Get(key)
	if err != nil {
		return nil, err
	}

	// Promote to the memory layer for subsequent reads.
	s.memory.cache.SetDefault(key, claim)
	return claim, nil
}

// Put writes the claim to both layers. The disk write is authoritative; the
// memory layer is only updated once the record is durable.
func (s *LayeredStore) Put(key string, claim *model.Claim) error {
	if err := s.file.Put(key, claim); err != nil {
		return err
	}
	s.memory.cache.SetDefault(key, claim)
	return nil
}

// AppendTurn appends a conversation turn, creating the claim if needed.
func (s *LayeredStore) AppendTurn(key string, turn model.ConversationTurn) error {
	claim, err := getOrCreate(s, key, nowUTC())
	if err != nil {
		return err
	}
	claim.Conversation = append(claim.Conversation, turn)
	return s.Put(key, claim)
}

// GetOrCreateThread returns the stable thread handle for a specialist.
func (s *LayeredStore) GetOrCreateThread(key string, specialistID string) (string, error) {
	claim, err := getOrCreate(s, key, nowUTC())
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
