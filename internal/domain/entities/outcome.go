package entities

import "fmt"

// Step names one stage of a sync or clone run.
type Step string

const (
	StepValidate       Step = "validate"
	StepConfigureEmail Step = "configure-email"
	StepConfigureName  Step = "configure-name"
	StepRewriteRemote  Step = "rewrite-remote"
	StepStage          Step = "stage"
	StepCommit         Step = "commit"
	StepDiscoverBranch Step = "discover-branch"
	StepPull           Step = "pull"
	StepPush           Step = "push"
	StepRestoreRemote  Step = "restore-remote"
	StepClone          Step = "clone"
	StepStatus         Step = "status"
)

// OutcomeStatus is the terminal state of a run.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// Outcome is the single terminal result of a run. Step and Err are set only when it failed.
type Outcome struct {
	Status OutcomeStatus
	Step   Step
	Err    error
}

// Succeeded builds a successful outcome.
func Succeeded() Outcome {
	return Outcome{Status: OutcomeSucceeded}
}

// Failed builds a failed outcome for the given step.
func Failed(step Step, err error) Outcome {
	return Outcome{Status: OutcomeFailed, Step: step, Err: err}
}

// Cancelled builds a cancelled outcome.
func Cancelled() Outcome {
	return Outcome{Status: OutcomeCancelled}
}

// IsSucceeded reports whether the run succeeded.
func (o Outcome) IsSucceeded() bool { return o.Status == OutcomeSucceeded }

// IsFailed reports whether the run failed.
func (o Outcome) IsFailed() bool { return o.Status == OutcomeFailed }

// IsCancelled reports whether the run was cancelled.
func (o Outcome) IsCancelled() bool { return o.Status == OutcomeCancelled }

func (o Outcome) String() string {
	switch o.Status {
	case OutcomeFailed:
		if o.Err == nil {
			return fmt.Sprintf("failed at %s", o.Step)
		}
		return fmt.Sprintf("failed at %s: %v", o.Step, o.Err)
	case OutcomeSucceeded, OutcomeCancelled:
		return string(o.Status)
	default:
		return "unknown"
	}
}
