package reasoning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkoval/claimflow/internal/model"
)

// stubService returns a canned response and records the last request.
type stubService struct {
	resp *Response
	err  error
	last Request
}

func (s *stubService) Invoke(_ context.Context, req Request) (*Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestClarify_ParsesResult(t *testing.T) {
	svc := &stubService{resp: &Response{
		Kind: model.ResponseStructured,
		Text: `{"expanded_incident_description": "Windscreen cracked on the motorway.", "clarifying_question": "When did this happen?"}`,
	}}

	out, err := Clarify(context.Background(), svc, "context block")
	if err != nil {
		t.Fatalf("Clarify failed: %v", err)
	}
	if out.ClarifyingQuestion != "When did this happen?" {
		t.Errorf("question = %q", out.ClarifyingQuestion)
	}
	if svc.last.Schema != ClarifySchema {
		t.Error("clarify did not request its schema")
	}
}

func TestClarify_EmptyQuestionIsMalformed(t *testing.T) {
	svc := &stubService{resp: &Response{
		Kind: model.ResponseStructured,
		Text: `{"expanded_incident_description": "something", "clarifying_question": ""}`,
	}}
	if _, err := Clarify(context.Background(), svc, "context"); !errors.Is(err, ErrMalformed) {
		t.Errorf("Clarify = %v, want ErrMalformed", err)
	}
}

func TestTriage_EmbedsCategoryList(t *testing.T) {
	svc := &stubService{resp: &Response{
		Kind: model.ResponseStructured,
		Text: `{"incident_types": ["fire", "vehicle_security"], "incident_description": "engine fire"}`,
	}}

	out, err := Triage(context.Background(), svc, "context", []string{"fire", "theft", "vehicle_security"})
	if err != nil {
		t.Fatalf("Triage failed: %v", err)
	}
	if len(out.IncidentTypes) != 2 {
		t.Errorf("incident types = %v", out.IncidentTypes)
	}
	if !strings.Contains(svc.last.System, "- fire\n- theft\n- vehicle_security") {
		t.Errorf("category list missing from instruction:\n%s", svc.last.System)
	}
}

func TestTriage_NoCategoriesIsMalformed(t *testing.T) {
	svc := &stubService{resp: &Response{
		Kind: model.ResponseStructured,
		Text: `{"incident_types": [], "incident_description": "unclear"}`,
	}}
	if _, err := Triage(context.Background(), svc, "context", []string{"fire"}); !errors.Is(err, ErrMalformed) {
		t.Errorf("Triage = %v, want ErrMalformed", err)
	}
}

func TestConsolidate_SendsSpecialistOutputs(t *testing.T) {
	svc := &stubService{resp: &Response{
		Kind: model.ResponseStructured,
		Text: `{"email_html": "<b>To help us proceed with your claim, please respond to the following questions:</b><br><br>1. When?<br>"}`,
	}}

	out, err := Consolidate(context.Background(), svc, map[string]string{
		"theft_assistant": "When was the vehicle last seen?",
	})
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if !strings.Contains(out.EmailHTML, "1. When?") {
		t.Errorf("email html = %q", out.EmailHTML)
	}
	if !strings.Contains(svc.last.Context, "theft_assistant") {
		t.Error("specialist outputs not forwarded")
	}
}

func TestTriage_PropagatesTimeout(t *testing.T) {
	svc := &stubService{err: ErrTimeout}
	if _, err := Triage(context.Background(), svc, "context", []string{"fire"}); !errors.Is(err, ErrTimeout) {
		t.Errorf("Triage = %v, want ErrTimeout", err)
	}
}
