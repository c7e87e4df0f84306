// Package policy implements the shared rule-evaluation engine that turns a
// specialist's structured facts into an approve/reject/pending verdict with
// an auditable reason trail. Every specialist policy is a declared Rule
// table interpreted by the one Evaluate function; there is no per-policy
// control flow.
package policy

import "fmt"

// Decision classifies a rule outcome and the overall verdict.
type Decision string

const (
	Approved Decision = "approved"
	Rejected Decision = "rejected"
	Pending  Decision = "pending"
)

// Rule is one declared policy condition. When its predicate is true against
// the claim facts, it contributes (Class, reason) to the verdict. Rules are
// evaluated in declared order and never short-circuit: every applicable rule
// fires so the verdict carries a full audit trail.
type Rule struct {
	// ID names the rule for audit purposes.
	ID string

	// When is the predicate over the claim facts.
	When func(f Facts) bool

	// Class is the decision contributed when the predicate holds.
	Class Decision

	// Reason renders the audit line. It receives the facts so reasons can
	// include reported values.
	Reason func(f Facts) string
}

// Reason is one fired rule's contribution to the verdict trail.
type Reason struct {
	Class Decision `json:"class"`
	Text  string   `json:"text"`
}

func (r Reason) String() string {
	return fmt.Sprintf("%s: %s", upper(r.Class), r.Text)
}

// Verdict is the immutable output of evaluating a rule table.
type Verdict struct {
	Decision Decision `json:"decision"`
	Reasons  []Reason `json:"reasons"`
}

// defaultReason is the synthesized trail entry when no rule fires.
const defaultReason = "no conclusive basis for decision."

// Evaluate runs every rule in declared order against the facts and resolves
// the overall decision. Resolution is the same in every policy instance:
// any rejected rule dominates, then pending, then approved; if nothing fired
// the verdict is pending with a synthesized default reason. Reject dominates
// pending dominates approve; when unsure, the claim stays open.
func Evaluate(facts Facts, table []Rule) Verdict {
	var reasons []Reason
	for _, rule := range table {
		if rule.When == nil || !rule.When(facts) {
			continue
		}
		reasons = append(reasons, Reason{Class: rule.Class, Text: rule.Reason(facts)})
	}

	if len(reasons) == 0 {
		return Verdict{
			Decision: Pending,
			Reasons:  []Reason{{Class: Pending, Text: defaultReason}},
		}
	}

	return Verdict{Decision: resolve(reasons), Reasons: reasons}
}

// resolve applies the priority law: rejected > pending > approved.
func resolve(reasons []Reason) Decision {
	var sawPending, sawApproved bool
	for _, r := range reasons {
		switch r.Class {
		case Rejected:
			return Rejected
		case Pending:
			sawPending = true
		case Approved:
			sawApproved = true
		}
	}
	if sawPending {
		return Pending
	}
	if sawApproved {
		return Approved
	}
	return Pending
}

// ReasonStrings renders the trail as formatted lines for storage.
func (v Verdict) ReasonStrings() []string {
	out := make([]string, len(v.Reasons))
	for i, r := range v.Reasons {
		out[i] = r.String()
	}
	return out
}

func upper(d Decision) string {
	switch d {
	case Approved:
		return "APPROVED"
	case Rejected:
		return "REJECTED"
	default:
		return "PENDING"
	}
}

// static reason helper for rules whose text does not depend on the facts.
func text(s string) func(Facts) string {
	return func(Facts) string { return s }
}
