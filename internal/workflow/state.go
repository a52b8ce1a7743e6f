package workflow

import (
	"errors"

	"mock-interview-backend/pkg/security"
)

// State is the workflow position derived from what the workflow currently holds.
type State int

const (
	StateIdle State = iota
	StateCVAttached
	StateQuestionsGenerated
	StateSessionStarted
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCVAttached:
		return "cv-attached"
	case StateQuestionsGenerated:
		return "questions-generated"
	case StateSessionStarted:
		return "session-started"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Guard failures. Their messages are shown to the candidate as-is.
var (
	ErrInvalidFileType     = security.ErrInvalidFileType
	ErrFileTooLarge        = security.ErrFileTooLarge
	ErrEmptyJobDescription = errors.New("Please enter a job description.")
	ErrNoQuestions         = errors.New("No questions available. Please generate questions first.")
	ErrNoSession           = errors.New("No active interview session.")
	ErrSessionCompleted    = errors.New("This interview session is already completed.")
)

// ErrSuperseded is returned by a call whose result was discarded because a newer
// call of the same step, or Reset, ran in the meantime.
var ErrSuperseded = errors.New("workflow: superseded by a newer call")

type step int

const (
	stepUpload step = iota
	stepGenerate
	stepStart
	stepComplete
	numSteps
)

func (s step) String() string {
	return [...]string{"upload", "generate", "start", "complete"}[s]
}
