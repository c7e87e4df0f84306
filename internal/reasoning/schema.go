package reasoning

// Schema names a strict JSON shape that the service must return.
type Schema struct {
	Name string
	Def  map[string]any
}

// ClarifySchema constrains the clarifying-question agent: a restatement of
// the known facts plus exactly one open question.
var ClarifySchema = &Schema{
	Name: "CLARIFY_RESULT",
	Def: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"expanded_incident_description": map[string]any{
				"type":        "string",
				"description": "A faithful restatement of everything reported so far, including attachment details.",
			},
			"clarifying_question": map[string]any{
				"type":        "string",
				"description": "A single open-ended question asking for the most critical missing context.",
			},
		},
		"required":             []string{"expanded_incident_description", "clarifying_question"},
		"additionalProperties": false,
	},
}

// TriageSchema constrains the triage agent: one or more incident categories
// plus the consolidated incident description.
var TriageSchema = &Schema{
	Name: "TRIAGE_RESULT",
	Def: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"incident_types": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Incident categories drawn only from the registered routing list.",
			},
			"incident_description": map[string]any{
				"type":        "string",
				"description": "A consolidated narrative of the incident.",
			},
		},
		"required":             []string{"incident_types", "incident_description"},
		"additionalProperties": false,
	},
}

// FollowUpSchema constrains the consolidation agent: one HTML body holding
// the deduplicated outstanding questions.
var FollowUpSchema = &Schema{
	Name: "FOLLOW_UP_QUESTIONS",
	Def: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"email_html": map[string]any{
				"type":        "string",
				"description": "An HTML-formatted list of deduplicated follow-up questions.",
			},
		},
		"required":             []string{"email_html"},
		"additionalProperties": false,
	},
}

// AttachmentDetailsSchema constrains the attachment description agent.
var AttachmentDetailsSchema = &Schema{
	Name: "ATTACHMENT_DETAILS",
	Def: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"details": map[string]any{
				"type":        "string",
				"description": "A factual description of the attachment content, with no classification.",
			},
		},
		"required":             []string{"details"},
		"additionalProperties": false,
	},
}
