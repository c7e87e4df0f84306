package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mkoval/claimflow/internal/ingest"
	"github.com/mkoval/claimflow/internal/model"
	"github.com/mkoval/claimflow/internal/notify"
	"github.com/mkoval/claimflow/internal/policy"
	"github.com/mkoval/claimflow/internal/reasoning"
	"github.com/mkoval/claimflow/internal/store"
)

// scriptedService answers each agent from a canned script.
type scriptedService struct {
	responses map[string]*reasoning.Response
	errs      map[string]error
	calls     []string
}

func (s *scriptedService) Invoke(_ context.Context, req reasoning.Request) (*reasoning.Response, error) {
	s.calls = append(s.calls, req.SpecialistID)
	if err, ok := s.errs[req.SpecialistID]; ok {
		return nil, err
	}
	if resp, ok := s.responses[req.SpecialistID]; ok {
		return resp, nil
	}
	return &reasoning.Response{Kind: model.ResponseStructured, Text: "{}"}, nil
}

type recordingNotifier struct {
	messages []notify.Message
	err      error
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)
	return nil
}

type countingDescriber struct {
	calls int
}

func (d *countingDescriber) Describe(_ context.Context, att ingest.Attachment) (model.AttachmentSummary, error) {
	d.calls++
	return model.AttachmentSummary{Name: att.Name, DerivedDescription: "a photo"}, nil
}

func structured(text string) *reasoning.Response {
	return &reasoning.Response{Kind: model.ResponseStructured, Text: text}
}

func freeform(text string) *reasoning.Response {
	return &reasoning.Response{Kind: model.ResponseFreeform, Text: text}
}

const (
	clarifyReply = `{"expanded_incident_description": "Vehicle stolen overnight from the driveway.", "clarifying_question": "Was the vehicle locked, and when did you last see it?"}`
	theftTriage  = `{"incident_types": ["theft"], "incident_description": "Vehicle stolen overnight."}`
	theftFacts   = `{"did_theft_occur": true, "was_theft_reported": true, "theft_crime_reference": "CR-4417", "was_car_locked": true, "incident_date": "2026-08-01"}`
)

func newTestOrchestrator(svc reasoning.Service) (*Orchestrator, store.Store, *recordingNotifier) {
	st := store.NewMemoryStore(time.Hour, time.Hour)
	notifier := &recordingNotifier{}
	o := New(st, svc, nil, notifier, zap.NewNop())
	return o, st, notifier
}

func getClaim(t *testing.T, st store.Store, sender string) *model.Claim {
	t.Helper()
	claim, err := st.Get(store.ClaimKey(sender))
	if err != nil {
		t.Fatalf("claim not persisted: %v", err)
	}
	return claim
}

func event(sender, body string) ingest.Event {
	return ingest.Event{Sender: sender, Body: body, Received: time.Now().UTC()}
}

func TestHandleEvent_FirstContactAsksClarifyingQuestion(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant": structured(clarifyReply),
	}}
	o, st, notifier := newTestOrchestrator(svc)

	if err := o.HandleEvent(context.Background(), event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageQuestioned {
		t.Errorf("stage = %q, want QUESTIONED", claim.Stage)
	}
	if !strings.Contains(claim.IncidentNarrative, "stolen overnight") {
		t.Errorf("narrative = %q", claim.IncidentNarrative)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0].BodyHTML, "Was the vehicle locked") {
		t.Errorf("clarifying question not sent: %+v", notifier.messages)
	}
}

func TestHandleEvent_ClarifyTimeoutLeavesStageNew(t *testing.T) {
	svc := &scriptedService{errs: map[string]error{
		"clarify_assistant": reasoning.ErrTimeout,
	}}
	o, st, notifier := newTestOrchestrator(svc)

	err := o.HandleEvent(context.Background(), event("a@example.com", "my car is gone"))
	if !errors.Is(err, reasoning.ErrTimeout) {
		t.Fatalf("HandleEvent = %v, want ErrTimeout", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageNew {
		t.Errorf("stage = %q, want NEW", claim.Stage)
	}
	if len(claim.Conversation) != 1 {
		t.Errorf("conversation length = %d, want the user turn persisted", len(claim.Conversation))
	}
	if len(notifier.messages) != 0 {
		t.Error("nothing should be sent on a failed clarify")
	}
}

func TestHandleEvent_ReplyTriagesAndCompletes(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant": structured(clarifyReply),
		"triage_assistant":  structured(theftTriage),
		policy.SpecTheft:    structured(theftFacts),
	}}
	o, st, notifier := newTestOrchestrator(svc)
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "it was locked, taken from my driveway on 2026-08-01")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageComplete {
		t.Fatalf("stage = %q, want COMPLETE", claim.Stage)
	}
	if claim.CompletionStatus != model.StatusComplete {
		t.Errorf("completion status = %q", claim.CompletionStatus)
	}
	if !claim.HasRun(policy.SpecTheft) {
		t.Error("theft specialist not in agents_run")
	}
	verdicts := claim.Verdicts[policy.SpecTheft]
	if len(verdicts) != 1 {
		t.Fatalf("verdict count = %d, want 1", len(verdicts))
	}
	if verdicts[0].Decision != string(policy.Approved) {
		t.Errorf("decision = %q, want approved", verdicts[0].Decision)
	}
	if len(notifier.messages) != 2 {
		t.Fatalf("messages = %d, want clarify question plus completion", len(notifier.messages))
	}
	if !strings.Contains(notifier.messages[1].BodyHTML, "everything we need") {
		t.Errorf("completion body = %q", notifier.messages[1].BodyHTML)
	}
}

func TestHandleEvent_TimedOutSpecialistRetriesNextEvent(t *testing.T) {
	svc := &scriptedService{
		responses: map[string]*reasoning.Response{
			"clarify_assistant": structured(clarifyReply),
			"triage_assistant":  structured(theftTriage),
		},
		errs: map[string]error{
			policy.SpecTheft: reasoning.ErrTimeout,
		},
	}
	o, st, _ := newTestOrchestrator(svc)
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "locked, driveway")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageTriaged {
		t.Errorf("stage = %q, want TRIAGED while a specialist is outstanding", claim.Stage)
	}
	if claim.HasRun(policy.SpecTheft) {
		t.Error("timed-out specialist must not be marked run")
	}

	// The specialist answers on the next event and the claim completes.
	delete(svc.errs, policy.SpecTheft)
	svc.responses[policy.SpecTheft] = structured(theftFacts)
	if err := o.HandleEvent(ctx, event("a@example.com", "anything else you need?")); err != nil {
		t.Fatalf("third event failed: %v", err)
	}

	claim = getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageComplete {
		t.Errorf("stage = %q, want COMPLETE after retry", claim.Stage)
	}
}

func TestHandleEvent_FreeformReplyBecomesFollowUp(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant":   structured(clarifyReply),
		"triage_assistant":    structured(theftTriage),
		policy.SpecTheft:      freeform("Was a tracking device fitted to the vehicle?"),
		"follow_up_assistant": structured(`{"email_html": "<b>To help us proceed with your claim, please respond to the following questions:</b><br><br>1. Was a tracking device fitted?<br>"}`),
	}}
	o, st, notifier := newTestOrchestrator(svc)
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "locked, driveway")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageComplete {
		t.Fatalf("stage = %q, want COMPLETE", claim.Stage)
	}
	if len(claim.Verdicts[policy.SpecTheft]) != 0 {
		t.Error("freeform reply must not produce a verdict")
	}
	last := notifier.messages[len(notifier.messages)-1]
	if !strings.Contains(last.BodyHTML, "tracking device") {
		t.Errorf("consolidated follow-up missing: %q", last.BodyHTML)
	}
}

func TestHandleEvent_ConsolidationFailureSendsRawQuestions(t *testing.T) {
	svc := &scriptedService{
		responses: map[string]*reasoning.Response{
			"clarify_assistant": structured(clarifyReply),
			"triage_assistant":  structured(theftTriage),
			policy.SpecTheft:    freeform("Where was the vehicle parked?"),
		},
		errs: map[string]error{
			"follow_up_assistant": reasoning.ErrTimeout,
		},
	}
	o, _, notifier := newTestOrchestrator(svc)
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "locked, driveway")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}

	last := notifier.messages[len(notifier.messages)-1]
	if !strings.Contains(last.BodyHTML, "1. Where was the vehicle parked?") {
		t.Errorf("fallback body missing the question: %q", last.BodyHTML)
	}
}

func TestHandleEvent_CompleteClaimIsTerminal(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant": structured(clarifyReply),
		"triage_assistant":  structured(theftTriage),
		policy.SpecTheft:    structured(theftFacts),
	}}
	o, st, notifier := newTestOrchestrator(svc)
	describer := &countingDescriber{}
	o.describer = describer
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "locked, driveway")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}
	sent := len(notifier.messages)
	callsBefore := len(svc.calls)
	describesBefore := describer.calls

	late := event("a@example.com", "thanks, one more thing")
	late.Attachments = []ingest.Attachment{{Name: "receipt.jpg", Content: []byte{0x01}}}
	if err := o.HandleEvent(ctx, late); err != nil {
		t.Fatalf("post-completion event failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageComplete {
		t.Errorf("stage = %q, want COMPLETE", claim.Stage)
	}
	if len(svc.calls) != callsBefore {
		t.Error("completed claim must not trigger reasoning calls")
	}
	if describer.calls != describesBefore {
		t.Error("completed claim must not trigger attachment description")
	}
	if len(notifier.messages) != sent {
		t.Error("completed claim must not trigger notifications")
	}
	last := claim.Conversation[len(claim.Conversation)-1]
	if last.Content != "thanks, one more thing" {
		t.Error("late event not recorded in history")
	}
}

func TestHandleEvent_UnknownCategorySkipped(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant": structured(clarifyReply),
		"triage_assistant":  structured(`{"incident_types": ["theft", "meteor_strike"], "incident_description": "stolen"}`),
		policy.SpecTheft:    structured(theftFacts),
	}}
	o, st, _ := newTestOrchestrator(svc)
	ctx := context.Background()

	if err := o.HandleEvent(ctx, event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("first event failed: %v", err)
	}
	if err := o.HandleEvent(ctx, event("a@example.com", "locked, driveway")); err != nil {
		t.Fatalf("second event failed: %v", err)
	}

	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageComplete {
		t.Errorf("stage = %q, want COMPLETE despite unroutable category", claim.Stage)
	}
	if !claim.HasCategory("meteor_strike") {
		t.Error("unknown category should still be recorded on the claim")
	}
}

func TestHandleEvent_NoSender(t *testing.T) {
	svc := &scriptedService{}
	o, _, _ := newTestOrchestrator(svc)
	if err := o.HandleEvent(context.Background(), event("", "hello")); !errors.Is(err, ErrNoSender) {
		t.Errorf("HandleEvent = %v, want ErrNoSender", err)
	}
}

func TestHandleEvent_NotifyFailureIsNotFatal(t *testing.T) {
	svc := &scriptedService{responses: map[string]*reasoning.Response{
		"clarify_assistant": structured(clarifyReply),
	}}
	st := store.NewMemoryStore(time.Hour, time.Hour)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	o := New(st, svc, nil, notifier, zap.NewNop())

	if err := o.HandleEvent(context.Background(), event("a@example.com", "my car is gone")); err != nil {
		t.Fatalf("HandleEvent failed on notify error: %v", err)
	}
	claim := getClaim(t, st, "a@example.com")
	if claim.Stage != model.StageQuestioned {
		t.Errorf("stage = %q, want QUESTIONED even when notify fails", claim.Stage)
	}
}

func TestAdvance_StageNeverMovesBackward(t *testing.T) {
	o, _, _ := newTestOrchestrator(&scriptedService{})
	claim := model.NewClaim(time.Now().UTC())
	claim.Stage = model.StageTriaged

	o.advance(claim, model.StageQuestioned)
	if claim.Stage != model.StageTriaged {
		t.Errorf("stage regressed to %q", claim.Stage)
	}
	o.advance(claim, model.StageComplete)
	if claim.Stage != model.StageComplete {
		t.Errorf("stage = %q, want COMPLETE", claim.Stage)
	}
}

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := newKeyLock()
	var counter int

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			locks.Lock("claim:v1:abc")
			counter++
			locks.Unlock("claim:v1:abc")
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if counter != 10 {
		t.Errorf("counter = %d, want 10", counter)
	}
}
