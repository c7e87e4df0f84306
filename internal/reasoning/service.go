// Package reasoning talks to the external language model service. Everything
// above this package deals in Requests and Responses; nothing else in the
// repo imports an LLM client directly.
package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mkoval/claimflow/internal/model"
)

// ErrTimeout is returned when the service did not answer within the
// configured deadline. The caller treats the run as never having happened.
var ErrTimeout = errors.New("reasoning service timeout")

// ErrMalformed is returned when the service answered but the payload does
// not conform to the requested schema.
var ErrMalformed = errors.New("malformed reasoning response")

// Request is one invocation of the reasoning service.
type Request struct {
	// SpecialistID names the logical agent, used for logging and rate
	// limiter attribution.
	SpecialistID string

	// ThreadHandle is the stable conversation handle for this specialist
	// and claimant. Opaque to the service layer.
	ThreadHandle string

	// System is the agent instruction block.
	System string

	// Context is the assembled claim context message.
	Context string

	// Schema, when set, constrains the response to a closed JSON shape.
	// Left nil for open-ended runs where the agent may answer with either
	// a JSON object of facts or plain text.
	Schema *Schema
}

// Response is the service's reply.
type Response struct {
	Kind model.ResponseKind
	Text string
}

// Service is the reasoning service contract.
type Service interface {
	Invoke(ctx context.Context, req Request) (*Response, error)
}

// DecodeJSON parses a structured response payload into out. A freeform
// response or unparseable payload returns ErrMalformed.
func DecodeJSON(resp *Response, out any) error {
	if resp.Kind != model.ResponseStructured {
		return fmt.Errorf("%w: freeform response", ErrMalformed)
	}
	dec := json.NewDecoder(strings.NewReader(resp.Text))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
