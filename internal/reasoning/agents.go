package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ClarifyResult is the output of the one-time clarifying question step.
type ClarifyResult struct {
	ExpandedIncidentDescription string `json:"expanded_incident_description"`
	ClarifyingQuestion          string `json:"clarifying_question"`
}

// TriageResult is the output of the categorization step.
type TriageResult struct {
	IncidentTypes       []string `json:"incident_types"`
	IncidentDescription string   `json:"incident_description"`
}

// FollowUpResult is the consolidated outstanding-questions message.
type FollowUpResult struct {
	EmailHTML string `json:"email_html"`
}

const clarifyInstruction = `You are the Clarifying Question Assistant for an automotive insurance claim system. Analyze the claimant's initial message and any attachment details.

Produce exactly two fields:
1. expanded_incident_description: faithfully restate what has been reported, in the claimant's own language where possible, supplemented by attachment details. Do not invent or assume anything not explicitly stated.
2. clarifying_question: a single, well-structured open-ended question that elicits the most critical missing information. It may contain sub-parts but must flow naturally.

Do not classify the incident. Infer which claim aspects are probable and craft the question accordingly.`

const triageInstructionHeader = `You are the Triage Assistant for an automotive insurance claim system. Read the conversation context and determine which incident categories apply. A claim may span several categories.

You must choose categories ONLY from this list:
`

const triageInstructionFooter = `
Also produce incident_description: a consolidated narrative of the incident drawn from the full context.`

const followUpInstruction = `You are the Follow-Up Assistant in an automotive insurance claim system. You receive the specialist assistants' outstanding questions as JSON.

Extract every follow-up question, including those embedded in free text. Normalize, deduplicate, and merge near-duplicates into one clear version each. Format the result as a single HTML string that begins with:

<b>To help us proceed with your claim, please respond to the following questions:</b><br><br>

followed by a numbered list, one question per line with <br> breaks. Only include questions the claimant needs to answer. No assistant names, no summaries, no metadata.`

// Clarify runs the one-time clarifying question step.
func Clarify(ctx context.Context, svc Service, contextMsg string) (*ClarifyResult, error) {
	resp, err := svc.Invoke(ctx, Request{
		SpecialistID: "clarify_assistant",
		System:       clarifyInstruction,
		Context:      contextMsg,
		Schema:       ClarifySchema,
	})
	if err != nil {
		return nil, err
	}
	var out ClarifyResult
	if err := DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	if out.ClarifyingQuestion == "" {
		return nil, fmt.Errorf("%w: empty clarifying question", ErrMalformed)
	}
	return &out, nil
}

// Triage categorizes the incident. categories is the closed routing list the
// model may choose from; results outside it are the caller's problem to skip.
func Triage(ctx context.Context, svc Service, contextMsg string, categories []string) (*TriageResult, error) {
	instruction := triageInstructionHeader + "- " + strings.Join(categories, "\n- ") + triageInstructionFooter
	resp, err := svc.Invoke(ctx, Request{
		SpecialistID: "triage_assistant",
		System:       instruction,
		Context:      contextMsg,
		Schema:       TriageSchema,
	})
	if err != nil {
		return nil, err
	}
	var out TriageResult
	if err := DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	if len(out.IncidentTypes) == 0 {
		return nil, fmt.Errorf("%w: triage returned no incident types", ErrMalformed)
	}
	return &out, nil
}

// Consolidate merges the specialists' outstanding questions into one message.
// specialistOutputs maps specialist identifiers to their raw responses.
func Consolidate(ctx context.Context, svc Service, specialistOutputs map[string]string) (*FollowUpResult, error) {
	payload, err := json.Marshal(map[string]any{"specialist_outputs": specialistOutputs})
	if err != nil {
		return nil, fmt.Errorf("marshal specialist outputs: %w", err)
	}
	resp, err := svc.Invoke(ctx, Request{
		SpecialistID: "follow_up_assistant",
		System:       followUpInstruction,
		Context:      string(payload),
		Schema:       FollowUpSchema,
	})
	if err != nil {
		return nil, err
	}
	var out FollowUpResult
	if err := DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpecialistInstruction builds the system prompt for one specialist run.
func SpecialistInstruction(specialistID string) string {
	return fmt.Sprintf(`You are the %s in an automotive insurance claim system. Review the conversation context and answer every claim fact within your scope that the claimant has stated, as a flat JSON object of fact names to values. Use "YYYY-MM-DD" for dates and "HH:MM" for times. Omit any fact the claimant has not addressed.

If critical information within your scope is missing, reply instead in plain text with the follow-up question you need answered.`, specialistID)
}
