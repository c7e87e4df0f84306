package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mkoval/claimflow/internal/model"
)

// FileStore persists one self-describing JSON document per claimant under a
// sessions directory. The layout keeps records human-readable for audit and
// debugging.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed session store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get loads the claim for the key.
func (s *FileStore) Get(key string) (*model.Claim, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read claim: %v", ErrUnavailable, err)
	}

	var claim model.Claim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, fmt.Errorf("%w: decode claim: %v", ErrUnavailable, err)
	}
	return &claim, nil
}

// Put replaces the stored claim for the key. The record is written to a
// temporary file and renamed so a crash never leaves a half-written claim.
func (s *FileStore) Put(key string, claim *model.Claim) error {
	claim.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: create sessions dir: %v", ErrUnavailable, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write claim: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: commit claim: %v", ErrUnavailable, err)
	}
	return nil
}

// AppendTurn appends a conversation turn, creating the claim if needed.
func (s *FileStore) AppendTurn(key string, turn model.ConversationTurn) error {
	claim, err := getOrCreate(s, key, time.Now().UTC())
	if err != nil {
		return err
	}
	claim.Conversation = append(claim.Conversation, turn)
	return s.Put(key, claim)
}

// GetOrCreateThread returns the stable thread handle for a specialist.
func (s *FileStore) GetOrCreateThread(key string, specialistID string) (string, error) {
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

// path generates the record path for a claim key.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
