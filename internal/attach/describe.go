// Package attach derives text descriptions from inbound attachments through
// the external extraction collaborator. Attachment content never enters the
// claim record; only the derived descriptions do.
package attach

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/mkoval/claimflow/internal/ingest"
	"github.com/mkoval/claimflow/internal/model"
	"github.com/mkoval/claimflow/internal/reasoning"
)

// Describer turns one attachment into a derived description.
type Describer interface {
	Describe(ctx context.Context, att ingest.Attachment) (model.AttachmentSummary, error)
}

const describeInstruction = `You are the Attachment Details Assistant for an automotive insurance claim system. Produce a factual 'details' string describing the attachment content: visible objects, damage, text, and context. Do not ask questions and do not classify the incident.`

// ReasoningDescriber implements Describer over the reasoning service.
type ReasoningDescriber struct {
	svc reasoning.Service
}

// NewReasoningDescriber creates a describer backed by the reasoning service.
func NewReasoningDescriber(svc reasoning.Service) *ReasoningDescriber {
	return &ReasoningDescriber{svc: svc}
}

// Describe derives a description for one attachment. Failures propagate
// unwrapped so the caller can distinguish timeouts from malformed replies.
func (d *ReasoningDescriber) Describe(ctx context.Context, att ingest.Attachment) (model.AttachmentSummary, error) {
	resp, err := d.svc.Invoke(ctx, reasoning.Request{
		SpecialistID: "attachment_details_assistant",
		System:       describeInstruction,
		Context:      describeContext(att),
		Schema:       reasoning.AttachmentDetailsSchema,
	})
	if err != nil {
		return model.AttachmentSummary{}, err
	}

	var out struct {
		Details string `json:"details"`
	}
	if err := reasoning.DecodeJSON(resp, &out); err != nil {
		return model.AttachmentSummary{}, err
	}
	return model.AttachmentSummary{Name: att.Name, DerivedDescription: out.Details}, nil
}

// extractedTextLimit bounds how much attachment text goes into the prompt.
const extractedTextLimit = 4000

// describeContext builds the user message for one attachment. Textual
// content is inlined up to a limit; binary content is referenced by name
// and size only.
func describeContext(att ingest.Attachment) string {
	if text, ok := extractableText(att.Content); ok {
		return fmt.Sprintf("Attachment name: %s\nExtracted text:\n%s", att.Name, text)
	}
	return fmt.Sprintf("Attachment name: %s\nBinary content, %d bytes. Describe what such a file would typically contain based on its name.", att.Name, len(att.Content))
}

// extractableText returns the content as a string when it is valid UTF-8
// with no NUL bytes, truncated to the prompt limit.
func extractableText(content []byte) (string, bool) {
	if len(content) == 0 || !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return "", false
	}
	if len(content) > extractedTextLimit {
		content = content[:extractedTextLimit]
	}
	return string(content), true
}
