package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mkoval/claimflow/internal/model"
)

func TestClaimKey_Stable(t *testing.T) {
	a := ClaimKey("Alice@Example.com")
	b := ClaimKey("  alice@example.com ")
	if a != b {
		t.Errorf("ClaimKey not normalized: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "claim:v1:") {
		t.Errorf("ClaimKey missing version prefix: %q", a)
	}
	if c := ClaimKey("bob@example.com"); c == a {
		t.Error("distinct addresses produced the same key")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	key := ClaimKey("driver@example.com")

	if _, err := s.Get(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Put = %v, want ErrNotFound", err)
	}

	claim := model.NewClaim(time.Now().UTC())
	claim.AddCategories([]string{"theft"})
	claim.IncidentNarrative = "car stolen overnight"
	if err := s.Put(key, claim); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.IncidentNarrative != "car stolen overnight" {
		t.Errorf("narrative = %q", got.IncidentNarrative)
	}
	if !got.HasCategory("theft") {
		t.Error("category lost on round trip")
	}
	if got.Stage != model.StageNew {
		t.Errorf("stage = %q, want %q", got.Stage, model.StageNew)
	}
}

func TestFileStore_AppendTurnCreatesClaim(t *testing.T) {
	s := NewFileStore(t.TempDir())
	key := ClaimKey("new@example.com")

	turn := model.ConversationTurn{
		Role:      model.RoleUser,
		Content:   "my windscreen cracked",
		Timestamp: time.Now().UTC(),
	}
	if err := s.AppendTurn(key, turn); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}

	claim, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(claim.Conversation) != 1 {
		t.Fatalf("conversation length = %d, want 1", len(claim.Conversation))
	}
	if claim.Conversation[0].Content != "my windscreen cracked" {
		t.Errorf("turn content = %q", claim.Conversation[0].Content)
	}
}

func TestFileStore_ThreadHandleStable(t *testing.T) {
	s := NewFileStore(t.TempDir())
	key := ClaimKey("thread@example.com")

	first, err := s.GetOrCreateThread(key, "theft_assistant")
	if err != nil {
		t.Fatalf("GetOrCreateThread failed: %v", err)
	}
	if !strings.HasPrefix(first, "thread_") {
		t.Errorf("handle = %q, want thread_ prefix", first)
	}

	second, err := s.GetOrCreateThread(key, "theft_assistant")
	if err != nil {
		t.Fatalf("GetOrCreateThread failed: %v", err)
	}
	if first != second {
		t.Errorf("handle changed between calls: %q vs %q", first, second)
	}

	other, err := s.GetOrCreateThread(key, "fire_assistant")
	if err != nil {
		t.Fatalf("GetOrCreateThread failed: %v", err)
	}
	if other == first {
		t.Error("distinct specialists share a thread handle")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	key := ClaimKey("mem@example.com")

	if _, err := s.Get(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Put = %v, want ErrNotFound", err)
	}

	claim := model.NewClaim(time.Now().UTC())
	claim.Stage = model.StageQuestioned
	if err := s.Put(key, claim); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Stage != model.StageQuestioned {
		t.Errorf("stage = %q, want %q", got.Stage, model.StageQuestioned)
	}
}

func TestLayeredStore_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	file := NewFileStore(dir)
	key := ClaimKey("layered@example.com")

	claim := model.NewClaim(time.Now().UTC())
	claim.IncidentNarrative = "hail damage"
	if err := file.Put(key, claim); err != nil {
		t.Fatalf("seed Put failed: %v", err)
	}

	// Fresh memory layer: the first Get must fall through to disk.
	layered := NewLayeredStore(NewMemoryStore(time.Minute, time.Minute), file)
	got, err := layered.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.IncidentNarrative != "hail damage" {
		t.Errorf("narrative = %q", got.IncidentNarrative)
	}

	// After promotion the memory layer answers directly.
	if _, err := layered.memory.Get(key); err != nil {
		t.Errorf("claim not promoted to memory: %v", err)
	}
}

func TestLayeredStore_PutWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	file := NewFileStore(dir)
	layered := NewLayeredStore(NewMemoryStore(time.Minute, time.Minute), file)
	key := ClaimKey("both@example.com")

	claim := model.NewClaim(time.Now().UTC())
	if err := layered.Put(key, claim); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := file.Get(key); err != nil {
		t.Errorf("claim missing from disk layer: %v", err)
	}
	if _, err := layered.memory.Get(key); err != nil {
		t.Errorf("claim missing from memory layer: %v", err)
	}
}
