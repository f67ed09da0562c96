package moderation

const (
	StatusApproved = "approved"
	StatusFlagged  = "flagged"
	StatusBlocked  = "blocked"
)

const (
	DefaultFeedback       = "Analysis completed"
	ParsingErrorFeedback  = "Could not analyze - parsing error"
	EmptyInputFeedback    = "Empty input provided"
	InternalErrorFeedback = "API error occurred"
)

// Verdict is the structured judgment about a piece of text. It is always
// well-formed: whatever the upstream model produced, the parser collapses it
// into these four fields.
type Verdict struct {
	CocViolation bool   `json:"cocViolation"`
	NSFW         bool   `json:"nsfw"`
	Rubbish      bool   `json:"rubbish"`
	Feedback     string `json:"feedback"`
}

// SafeFallback is the conservative verdict substituted whenever the model's
// output cannot be trusted or parsed.
func SafeFallback() Verdict {
	return Verdict{
		CocViolation: false,
		NSFW:         false,
		Rubbish:      true,
		Feedback:     ParsingErrorFeedback,
	}
}

// EmptyInputVerdict is the trivial result for whitespace-only submissions.
func EmptyInputVerdict() Verdict {
	return Verdict{
		Rubbish:  true,
		Feedback: EmptyInputFeedback,
	}
}

// ResolveStatus classifies a verdict. Blocked takes precedence over flagged;
// the three outcomes are mutually exclusive and exhaustive.
func ResolveStatus(v Verdict) string {
	if v.CocViolation || v.NSFW {
		return StatusBlocked
	}
	if v.Rubbish {
		return StatusFlagged
	}
	return StatusApproved
}
