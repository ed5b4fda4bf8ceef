package grader

// Action names one of the three instructor-triggered workflows.
type Action string

const (
	ActionGenerate Action = "generate_rubric"
	ActionGrade    Action = "grade_submission"
	ActionUpload   Action = "upload_spreadsheet"
)

// Phase is the lifecycle position of an action: idle until first invoked,
// in_flight while its webhook request is outstanding, then settled as
// succeeded or failed until the next invocation.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseInFlight  Phase = "in_flight"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// ErrorKind classifies a settled failure.
type ErrorKind string

const (
	// ErrorValidation: a required local input was missing; no request went out.
	ErrorValidation ErrorKind = "validation"
	// ErrorWebhook: the endpoint answered with a non-success status.
	ErrorWebhook ErrorKind = "webhook"
	// ErrorNetwork: the request never completed (DNS, refused connection, ...).
	ErrorNetwork ErrorKind = "network"
)

type ActionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ActionState is the per-action bundle: phase, last result and last error.
// Exactly one of Result/Err is populated once settled; both are cleared when
// the action is invoked again.
type ActionState struct {
	Phase  Phase        `json:"phase"`
	Result string       `json:"result,omitempty"`
	Err    *ActionError `json:"error,omitempty"`
}

func (s ActionState) Busy() bool { return s.Phase == PhaseInFlight }

func validationError(msg string) *ActionError {
	return &ActionError{Kind: ErrorValidation, Message: msg}
}
