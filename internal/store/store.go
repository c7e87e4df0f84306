// Package store holds the durable per-claimant session record. The unit of
// consistency is one whole Claim document: callers must serialize
// read-modify-write cycles per claim key (the orchestrator holds a per-key
// lock); the store never merges concurrent partial updates.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkoval/claimflow/internal/model"
)

// ErrNotFound is returned by Get when no claim exists for the key.
var ErrNotFound = errors.New("claim not found")

// ErrUnavailable wraps store I/O failures. Callers may retry the whole
// event; the store itself performs no retries.
var ErrUnavailable = errors.New("session store unavailable")

// Store is the claim session store contract.
type Store interface {
	// Get loads the claim for the key, or ErrNotFound.
	Get(key string) (*model.Claim, error)

	// Put replaces the stored claim for the key.
	Put(key string, claim *model.Claim) error

	// AppendTurn appends a conversation turn to the claim, creating the
	// claim if it does not exist yet.
	AppendTurn(key string, turn model.ConversationTurn) error

	// GetOrCreateThread returns the stable thread handle for a specialist,
	// minting and persisting one on first use. Once created the same handle
	// is returned on every subsequent call for that specialist.
	GetOrCreateThread(key string, specialistID string) (string, error)
}

// ClaimKey derives the stable claim key from a contact address.
func ClaimKey(address string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(address))))
	return "claim:v1:" + hex.EncodeToString(hash[:12])
}

// NewThreadHandle mints an opaque conversation handle. The orchestrator
// mints handles inline on the claim document it holds; GetOrCreateThread
// serves callers that need a handle without the whole claim.
func NewThreadHandle() string {
	return "thread_" + uuid.NewString()
}

// nowUTC returns the current wall clock in UTC.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// getOrCreate loads a claim or initializes a fresh one in the NEW stage.
func getOrCreate(s Store, key string, now time.Time) (*model.Claim, error) {
	claim, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return model.NewClaim(now), nil
	}
	if err != nil {
		return nil, err
	}
	return claim, nil
}
