package prompt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mkoval/claimflow/internal/model"
)

func TestBuildContext_SectionOrder(t *testing.T) {
	claim := model.NewClaim(time.Now().UTC())
	claim.Attachments = []model.AttachmentSummary{
		{Name: "photo1.jpg", DerivedDescription: "Front bumper damage visible"},
	}
	claim.Conversation = []model.ConversationTurn{
		{Role: model.RoleUser, Content: "someone hit my parked car"},
	}
	claim.SpecialistTurns["theft_assistant"] = []model.ConversationTurn{
		{Role: model.RoleSpecialist, Content: "Was the vehicle locked?"},
	}

	out := BuildContext(claim, "theft_assistant")

	sections := []string{
		"=== CONVERSATION CONTEXT ===",
		"=== ATTACHMENT DETAILS ===",
		"photo1.jpg: Front bumper damage visible",
		"=== CONVERSATION HISTORY ===",
		"USER: someone hit my parked car",
		"=== THEFT_ASSISTANT CONVERSATION HISTORY ===",
		"SPECIALIST: Was the vehicle locked?",
		"=== INSTRUCTION FOR THEFT_ASSISTANT ===",
	}
	pos := -1
	for _, want := range sections {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("missing section %q in output:\n%s", want, out)
		}
		if idx < pos {
			t.Errorf("section %q appears out of order", want)
		}
		pos = idx
	}
}

func TestBuildContext_EmptySectionsOmitted(t *testing.T) {
	claim := model.NewClaim(time.Now().UTC())
	out := BuildContext(claim, "fire_assistant")

	if strings.Contains(out, "ATTACHMENT DETAILS") {
		t.Error("attachment section rendered for claim with no attachments")
	}
	if strings.Contains(out, "=== CONVERSATION HISTORY ===") {
		t.Error("history section rendered for empty conversation")
	}
	if !strings.Contains(out, "=== INSTRUCTION FOR FIRE_ASSISTANT ===") {
		t.Error("instruction section missing")
	}
}

func TestBuildContext_SpecialistWindow(t *testing.T) {
	claim := model.NewClaim(time.Now().UTC())
	for i := 0; i < 8; i++ {
		claim.SpecialistTurns["fire_assistant"] = append(
			claim.SpecialistTurns["fire_assistant"],
			model.ConversationTurn{Role: model.RoleUser, Content: fmt.Sprintf("turn %d", i)},
		)
	}

	out := BuildContext(claim, "fire_assistant")

	for i := 0; i < 3; i++ {
		if strings.Contains(out, fmt.Sprintf("turn %d\n", i)) {
			t.Errorf("turn %d should be outside the window", i)
		}
	}
	for i := 3; i < 8; i++ {
		if !strings.Contains(out, fmt.Sprintf("turn %d\n", i)) {
			t.Errorf("turn %d missing from window", i)
		}
	}
}

func TestBuildContext_Deterministic(t *testing.T) {
	claim := model.NewClaim(time.Now().UTC())
	claim.Conversation = []model.ConversationTurn{
		{Role: model.RoleUser, Content: "windscreen chipped on motorway"},
	}
	first := BuildContext(claim, "accidental_and_glass_assistant")
	second := BuildContext(claim, "accidental_and_glass_assistant")
	if first != second {
		t.Error("same claim state produced different context text")
	}
}
