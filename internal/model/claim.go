package model

import "time"

// Stage represents the processing stage of a claim. Stages only move
// forward: NEW -> QUESTIONED -> TRIAGED -> COMPLETE.
type Stage string

const (
	StageNew        Stage = "NEW"        // First contact, nothing asked yet
	StageQuestioned Stage = "QUESTIONED" // Clarifying question sent, awaiting reply
	StageTriaged    Stage = "TRIAGED"    // Incident categorized, specialists dispatched
	StageComplete   Stage = "COMPLETE"   // All required specialists have run
)

// Rank returns the ordinal position of the stage on the forward path.
// Unknown stages rank below NEW so they never mask a real transition.
func (s Stage) Rank() int {
	switch s {
	case StageNew:
		return 0
	case StageQuestioned:
		return 1
	case StageTriaged:
		return 2
	case StageComplete:
		return 3
	default:
		return -1
	}
}

// CompletionStatus tracks whether the claim investigation is still gathering
// information or has produced its consolidated follow-up.
type CompletionStatus string

const (
	StatusInProgress CompletionStatus = "in_progress"
	StatusComplete   CompletionStatus = "complete"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser       Role = "user"
	RoleSpecialist Role = "specialist"
	RoleSystem     Role = "system"
)

// Claim is the durable per-claimant record. One exists per contact address;
// it is mutated only by the orchestrator and owns its conversation history,
// thread map, and verdict history exclusively.
type Claim struct {
	Stage              Stage             `json:"stage"`
	IncidentCategories []string          `json:"incident_categories"`
	IncidentNarrative  string            `json:"incident_narrative"`
	AgentsRun          []string          `json:"agents_run"`
	AgentThreads       map[string]string `json:"agent_threads"`
	CompletionStatus   CompletionStatus  `json:"completion_status"`

	Conversation    []ConversationTurn            `json:"conversation"`
	SpecialistTurns map[string][]ConversationTurn `json:"specialist_turns,omitempty"`
	SpecialistData  map[string]string             `json:"specialist_data,omitempty"`
	Attachments     []AttachmentSummary           `json:"attachments,omitempty"`
	FollowUps       []FollowUp                    `json:"follow_ups,omitempty"`
	Verdicts        map[string][]VerdictRecord    `json:"verdicts,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewClaim returns a freshly initialized claim in the NEW stage.
func NewClaim(now time.Time) *Claim {
	return &Claim{
		Stage:            StageNew,
		AgentThreads:     make(map[string]string),
		SpecialistTurns:  make(map[string][]ConversationTurn),
		Verdicts:         make(map[string][]VerdictRecord),
		CompletionStatus: StatusInProgress,
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// HasCategory reports whether the claim already carries the category tag.
func (c *Claim) HasCategory(tag string) bool {
	for _, existing := range c.IncidentCategories {
		if existing == tag {
			return true
		}
	}
	return false
}

// AddCategories merges new category tags into the claim. Categories only
// ever grow over the claim's lifetime; duplicates are ignored.
func (c *Claim) AddCategories(tags []string) {
	for _, tag := range tags {
		if tag != "" && !c.HasCategory(tag) {
			c.IncidentCategories = append(c.IncidentCategories, tag)
		}
	}
}

// HasRun reports whether the named specialist has completed a run.
func (c *Claim) HasRun(specialistID string) bool {
	for _, id := range c.AgentsRun {
		if id == specialistID {
			return true
		}
	}
	return false
}

// MarkRun records a completed specialist run, once.
func (c *Claim) MarkRun(specialistID string) {
	if !c.HasRun(specialistID) {
		c.AgentsRun = append(c.AgentsRun, specialistID)
	}
}

// AppendSpecialistTurn appends to one specialist's private exchange.
func (c *Claim) AppendSpecialistTurn(specialistID string, turn ConversationTurn) {
	if c.SpecialistTurns == nil {
		c.SpecialistTurns = make(map[string][]ConversationTurn)
	}
	c.SpecialistTurns[specialistID] = append(c.SpecialistTurns[specialistID], turn)
}

// AddFollowUp queues one outstanding free-text specialist question.
func (c *Claim) AddFollowUp(f FollowUp) {
	c.FollowUps = append(c.FollowUps, f)
}

// TakeFollowUps drains the outstanding follow-up queue for consolidation.
func (c *Claim) TakeFollowUps() []FollowUp {
	out := c.FollowUps
	c.FollowUps = nil
	return out
}

// SaveSpecialistData records the latest structured payload a specialist
// produced, replacing any earlier one.
func (c *Claim) SaveSpecialistData(specialistID string, payload string) {
	if c.SpecialistData == nil {
		c.SpecialistData = make(map[string]string)
	}
	c.SpecialistData[specialistID] = payload
}

// RecordVerdict appends one policy verdict to the specialist's history.
func (c *Claim) RecordVerdict(specialistID string, v VerdictRecord) {
	if c.Verdicts == nil {
		c.Verdicts = make(map[string][]VerdictRecord)
	}
	c.Verdicts[specialistID] = append(c.Verdicts[specialistID], v)
}

// ConversationTurn is one ordered, append-only entry in a conversation log.
type ConversationTurn struct {
	Role        Role      `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Attachments []string  `json:"attachments,omitempty"`
}

// AttachmentSummary pairs an attachment name with the description derived by
// the external extraction collaborator. Never mutated after creation.
type AttachmentSummary struct {
	Name               string `json:"name"`
	DerivedDescription string `json:"derived_description"`
}

// FollowUp is one outstanding free-text question produced by a specialist,
// held until consolidation into a single outbound message.
type FollowUp struct {
	SpecialistID string    `json:"specialist_id"`
	Response     string    `json:"response"`
	Timestamp    time.Time `json:"timestamp"`
}

// ResponseKind distinguishes schema-conforming specialist output from
// conversational free text.
type ResponseKind string

const (
	ResponseStructured ResponseKind = "structured"
	ResponseFreeform   ResponseKind = "freeform"
)

// VerdictRecord stores one policy verdict in the claim's audit history.
type VerdictRecord struct {
	Decision  string    `json:"decision"`
	Reasons   []string  `json:"reasons"`
	Timestamp time.Time `json:"timestamp"`
}
