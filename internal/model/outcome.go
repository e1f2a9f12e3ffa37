package model

// Status is the result tag of a ConversionOutcome.
type Status int

const (
	// StatusSuccess means the WebP file was written.
	StatusSuccess Status = iota
	// StatusFailure means the task failed at some step; see Detail.
	StatusFailure
)

// String returns a lowercase label for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ConversionOutcome is the result of running one ConversionTask.
//
// Exactly one outcome is produced per task. Failures are never retried; they
// are counted in the RunSummary and reported to the user.
type ConversionOutcome struct {
	// Task is the task this outcome belongs to.
	Task ConversionTask

	// Status tells whether the conversion succeeded.
	Status Status

	// Detail is the error message for failed conversions.
	// Empty on success.
	Detail string

	// Unexpected is set when the worker did not return normally (a panic was
	// recovered) and the outcome was synthesized by the coordinator.
	Unexpected bool
}

// Succeeded returns a successful outcome for task.
func Succeeded(task ConversionTask) ConversionOutcome {
	return ConversionOutcome{Task: task, Status: StatusSuccess}
}

// Failed returns a failed outcome for task carrying err's message.
// A nil err yields a failure with an empty Detail.
func Failed(task ConversionTask, err error) ConversionOutcome {
	o := ConversionOutcome{Task: task, Status: StatusFailure}
	if err != nil {
		o.Detail = err.Error()
	}
	return o
}

// OK reports whether the outcome is a success.
func (o ConversionOutcome) OK() bool {
	return o.Status == StatusSuccess
}
