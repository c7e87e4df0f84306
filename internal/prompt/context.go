// Package prompt assembles the context block sent to reasoning specialists.
// The block is deterministic for a given claim state: same claim, same
// specialist, same text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/mkoval/claimflow/internal/model"
)

// specialistWindow is how many of the specialist's own recent turns are
// included. Older turns are dropped from the prompt but never from the
// stored record.
const specialistWindow = 5

// BuildContext renders the full context message for one specialist run.
// Sections appear in a fixed order: attachment details, the shared
// conversation history, the specialist's recent private exchange, and the
// closing instruction. Empty sections are omitted entirely.
func BuildContext(claim *model.Claim, specialistID string) string {
	var b strings.Builder
	b.WriteString("=== CONVERSATION CONTEXT ===\n\n")

	if len(claim.Attachments) > 0 {
		b.WriteString("=== ATTACHMENT DETAILS ===\n")
		for _, att := range claim.Attachments {
			fmt.Fprintf(&b, "%s: %s\n", att.Name, att.DerivedDescription)
		}
		b.WriteString("\n")
	}

	if len(claim.Conversation) > 0 {
		b.WriteString("=== CONVERSATION HISTORY ===\n")
		for _, turn := range claim.Conversation {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(turn.Role)), turn.Content)
		}
		b.WriteString("\n")
	}

	if specialistID != "" {
		if turns := recentTurns(claim, specialistID); len(turns) > 0 {
			fmt.Fprintf(&b, "=== %s CONVERSATION HISTORY ===\n", strings.ToUpper(specialistID))
			for _, turn := range turns {
				fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(turn.Role)), turn.Content)
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "=== INSTRUCTION FOR %s ===\n", strings.ToUpper(specialistID))
		b.WriteString("Please analyze the above context and provide your specialist assessment.\n")
	}

	return b.String()
}

// recentTurns returns the specialist's last turns, bounded by the window.
func recentTurns(claim *model.Claim, specialistID string) []model.ConversationTurn {
	turns := claim.SpecialistTurns[specialistID]
	if len(turns) > specialistWindow {
		return turns[len(turns)-specialistWindow:]
	}
	return turns
}
