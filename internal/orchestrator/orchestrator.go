// Package orchestrator drives the claim state machine. Every inbound event
// runs under the claimant's key lock, mutates the single claim document, and
// persists it whole before any outbound notification goes out.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkoval/claimflow/internal/attach"
	"github.com/mkoval/claimflow/internal/ingest"
	"github.com/mkoval/claimflow/internal/model"
	"github.com/mkoval/claimflow/internal/notify"
	"github.com/mkoval/claimflow/internal/policy"
	"github.com/mkoval/claimflow/internal/prompt"
	"github.com/mkoval/claimflow/internal/reasoning"
	"github.com/mkoval/claimflow/internal/registry"
	"github.com/mkoval/claimflow/internal/store"
)

// ErrNoSender is returned for events without a claimant address; there is
// no claim to attribute them to.
var ErrNoSender = errors.New("event has no sender address")

// Orchestrator owns all claim mutations.
type Orchestrator struct {
	store     store.Store
	svc       reasoning.Service
	describer attach.Describer
	notifier  notify.Notifier
	log       *zap.Logger
	locks     *keyLock
	now       func() time.Time
}

// New creates an orchestrator. svc must be non-nil; describer and notifier
// may be nil, the corresponding steps are then skipped.
func New(st store.Store, svc reasoning.Service, describer attach.Describer, notifier notify.Notifier, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:     st,
		svc:       svc,
		describer: describer,
		notifier:  notifier,
		log:       log,
		locks:     newKeyLock(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// HandleEvent processes one inbound claimant message end to end. Events for
// the same claimant are serialized; a persistence failure aborts the event
// with the claim unchanged on disk.
func (o *Orchestrator) HandleEvent(ctx context.Context, ev ingest.Event) error {
	if ev.Sender == "" {
		return ErrNoSender
	}

	key := store.ClaimKey(ev.Sender)
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	claim, err := o.load(key)
	if err != nil {
		return err
	}

	if claim.Stage == model.StageComplete {
		// Terminal stage: record the event without any reasoning calls,
		// attachment description included.
		o.recordUserTurn(claim, ev)
		o.log.Info("event on completed claim recorded",
			zap.String("claim", key))
		return o.persist(key, claim)
	}

	o.recordAttachments(ctx, claim, ev)
	o.recordUserTurn(claim, ev)

	switch claim.Stage {
	case model.StageNew:
		return o.clarify(ctx, key, claim, ev)

	default:
		return o.triageAndDispatch(ctx, key, claim, ev)
	}
}

// load fetches the claim for a key, creating a fresh one on first contact.
func (o *Orchestrator) load(key string) (*model.Claim, error) {
	claim, err := o.store.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return model.NewClaim(o.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load claim: %w", err)
	}
	return claim, nil
}

// recordAttachments derives and stores descriptions for new attachments.
// Description failures are logged and skipped; the event goes on without
// that attachment's details.
func (o *Orchestrator) recordAttachments(ctx context.Context, claim *model.Claim, ev ingest.Event) {
	if o.describer == nil {
		return
	}
	for _, att := range ev.Attachments {
		summary, err := o.describer.Describe(ctx, att)
		if err != nil {
			o.log.Warn("attachment description failed",
				zap.String("attachment", att.Name),
				zap.Error(err))
			continue
		}
		claim.Attachments = append(claim.Attachments, summary)
	}
}

// recordUserTurn appends the claimant's message to the shared conversation.
func (o *Orchestrator) recordUserTurn(claim *model.Claim, ev ingest.Event) {
	names := make([]string, 0, len(ev.Attachments))
	for _, att := range ev.Attachments {
		names = append(names, att.Name)
	}
	claim.Conversation = append(claim.Conversation, model.ConversationTurn{
		Role:        model.RoleUser,
		Content:     ev.Body,
		Timestamp:   o.now(),
		Attachments: names,
	})
}

// clarify runs the one-time clarifying question step on first contact. On a
// reasoning failure the claim stays in the NEW stage; the next event retries.
func (o *Orchestrator) clarify(ctx context.Context, key string, claim *model.Claim, ev ingest.Event) error {
	result, err := reasoning.Clarify(ctx, o.svc, prompt.BuildContext(claim, ""))
	if err != nil {
		if perr := o.persist(key, claim); perr != nil {
			return perr
		}
		return fmt.Errorf("clarify: %w", err)
	}

	claim.IncidentNarrative = result.ExpandedIncidentDescription
	claim.Conversation = append(claim.Conversation, model.ConversationTurn{
		Role:      model.RoleSpecialist,
		Content:   result.ClarifyingQuestion,
		Timestamp: o.now(),
	})
	o.advance(claim, model.StageQuestioned)

	if err := o.persist(key, claim); err != nil {
		return err
	}

	o.send(ctx, ev.Sender, "Your claim: a quick question", result.ClarifyingQuestion)
	return nil
}

// triageAndDispatch re-triages the claim, runs the missing specialists, and
// completes the claim when every required specialist has run.
func (o *Orchestrator) triageAndDispatch(ctx context.Context, key string, claim *model.Claim, ev ingest.Event) error {
	result, err := reasoning.Triage(ctx, o.svc, prompt.BuildContext(claim, ""), registry.Categories())
	switch {
	case err == nil:
		claim.AddCategories(result.IncidentTypes)
		if result.IncidentDescription != "" {
			claim.IncidentNarrative = result.IncidentDescription
		}
		o.advance(claim, model.StageTriaged)
	case len(claim.IncidentCategories) > 0:
		// Re-triage failed but earlier categories stand; proceed on those.
		o.log.Warn("re-triage failed, dispatching on known categories",
			zap.String("claim", key),
			zap.Error(err))
	default:
		if perr := o.persist(key, claim); perr != nil {
			return perr
		}
		return fmt.Errorf("triage: %w", err)
	}

	specialists, errs := registry.ResolveAll(claim.IncidentCategories)
	for _, rerr := range errs {
		o.log.Warn("skipping unroutable category",
			zap.String("claim", key),
			zap.Error(rerr))
	}

	allRan := true
	for _, id := range specialists {
		if claim.HasRun(id) {
			continue
		}
		if !o.runSpecialist(ctx, claim, ev, id) {
			allRan = false
		}
	}

	if allRan && len(specialists) > 0 {
		return o.complete(ctx, key, claim, ev)
	}
	return o.persist(key, claim)
}

// runSpecialist executes one specialist assessment. Returns false when the
// run did not happen (timeout or transport failure) so a later event can
// retry it; agents_run is only extended by completed runs.
func (o *Orchestrator) runSpecialist(ctx context.Context, claim *model.Claim, ev ingest.Event, id string) bool {
	handle, ok := claim.AgentThreads[id]
	if !ok {
		handle = store.NewThreadHandle()
		if claim.AgentThreads == nil {
			claim.AgentThreads = make(map[string]string)
		}
		claim.AgentThreads[id] = handle
	}

	claim.AppendSpecialistTurn(id, model.ConversationTurn{
		Role:      model.RoleUser,
		Content:   ev.Body,
		Timestamp: o.now(),
	})

	// No response schema: the specialist may answer with a JSON object of
	// facts or, when information is missing, a plain-text question.
	resp, err := o.svc.Invoke(ctx, reasoning.Request{
		SpecialistID: id,
		ThreadHandle: handle,
		System:       reasoning.SpecialistInstruction(id),
		Context:      prompt.BuildContext(claim, id),
	})
	if err != nil {
		o.log.Warn("specialist run did not complete",
			zap.String("specialist", id),
			zap.Error(err))
		return false
	}

	claim.AppendSpecialistTurn(id, model.ConversationTurn{
		Role:      model.RoleSpecialist,
		Content:   resp.Text,
		Timestamp: o.now(),
	})

	if resp.Kind == model.ResponseStructured {
		o.foldVerdict(claim, id, resp.Text)
	} else {
		claim.AddFollowUp(model.FollowUp{
			SpecialistID: id,
			Response:     resp.Text,
			Timestamp:    o.now(),
		})
	}
	claim.MarkRun(id)
	return true
}

// foldVerdict evaluates a structured assessment against the specialist's
// policy table and appends the verdict to the claim history.
func (o *Orchestrator) foldVerdict(claim *model.Claim, id string, payload string) {
	var facts policy.Facts
	if err := json.Unmarshal([]byte(payload), &facts); err != nil {
		// Parsed as an object upstream but not into facts; treat as a
		// free-text reply.
		claim.AddFollowUp(model.FollowUp{
			SpecialistID: id,
			Response:     payload,
			Timestamp:    o.now(),
		})
		return
	}

	claim.SaveSpecialistData(id, payload)
	verdict := policy.Evaluate(facts, policy.TableFor(id))
	claim.RecordVerdict(id, model.VerdictRecord{
		Decision:  string(verdict.Decision),
		Reasons:   verdict.ReasonStrings(),
		Timestamp: o.now(),
	})
	o.log.Info("specialist verdict recorded",
		zap.String("specialist", id),
		zap.String("decision", string(verdict.Decision)))
}

// complete consolidates outstanding follow-ups, marks the claim COMPLETE,
// persists it, and notifies the claimant. The notification is best-effort;
// the completed state is already durable when it goes out.
func (o *Orchestrator) complete(ctx context.Context, key string, claim *model.Claim, ev ingest.Event) error {
	body := o.consolidate(ctx, claim)

	o.advance(claim, model.StageComplete)
	claim.CompletionStatus = model.StatusComplete

	if err := o.persist(key, claim); err != nil {
		return err
	}

	o.send(ctx, ev.Sender, "Your claim: next steps", body)
	return nil
}

// consolidate merges outstanding follow-up questions into one outbound body.
// When the reasoning call fails, a locally built list goes out instead; the
// questions are never dropped.
func (o *Orchestrator) consolidate(ctx context.Context, claim *model.Claim) string {
	followUps := claim.TakeFollowUps()
	if len(followUps) == 0 {
		return "<b>Thank you. We have everything we need to assess your claim and will be in touch.</b>"
	}

	outputs := make(map[string]string, len(followUps))
	for _, f := range followUps {
		outputs[f.SpecialistID] = f.Response
	}

	result, err := reasoning.Consolidate(ctx, o.svc, outputs)
	if err != nil {
		o.log.Warn("follow-up consolidation failed, sending raw questions",
			zap.Error(err))
		return fallbackFollowUpBody(followUps)
	}
	return result.EmailHTML
}

// fallbackFollowUpBody renders the outstanding questions without the
// deduplication pass.
func fallbackFollowUpBody(followUps []model.FollowUp) string {
	body := "<b>To help us proceed with your claim, please respond to the following questions:</b><br><br>"
	for i, f := range followUps {
		body += fmt.Sprintf("%d. %s<br>", i+1, f.Response)
	}
	return body
}

// advance moves the claim forward to the target stage. Stages never move
// backward; a stale target is ignored.
func (o *Orchestrator) advance(claim *model.Claim, target model.Stage) {
	if target.Rank() > claim.Stage.Rank() {
		claim.Stage = target
	}
}

// persist writes the claim document. A failure here aborts the event; the
// caller returns the error without sending anything outbound.
func (o *Orchestrator) persist(key string, claim *model.Claim) error {
	if err := o.store.Put(key, claim); err != nil {
		return fmt.Errorf("persist claim: %w", err)
	}
	return nil
}

// send delivers an outbound message. Failures are logged, never returned:
// claim state stays the source of truth.
func (o *Orchestrator) send(ctx context.Context, recipient, subject, bodyHTML string) {
	if o.notifier == nil {
		return
	}
	err := o.notifier.Send(ctx, notify.Message{
		Recipient: recipient,
		Subject:   subject,
		BodyHTML:  bodyHTML,
	})
	if err != nil {
		o.log.Warn("outbound notification failed",
			zap.String("recipient", recipient),
			zap.Error(err))
	}
}
