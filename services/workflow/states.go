package workflow

// Step is a position in the kiosk workflow.
type Step int

const (
	StepInput Step = iota
	StepReview
	StepVerification
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepReview:
		return "review"
	case StepVerification:
		return "verification"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// allowedTransitions is keyed by the current step. Completed -> Input is the
// reset performed by NewTransaction.
var allowedTransitions = map[Step][]Step{
	StepInput:        {StepReview},
	StepReview:       {StepVerification, StepInput},
	StepVerification: {StepCompleted, StepReview},
	StepCompleted:    {StepInput},
}

// CanTransition reports whether moving from one step to another is legal.
func CanTransition(from, to Step) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
