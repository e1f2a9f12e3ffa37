package model

// RunSummary is the tally of all outcomes of a run.
//
// A RunSummary is owned by a single aggregating goroutine; it is not safe
// for concurrent mutation.
type RunSummary struct {
	// Successful is the number of tasks that produced a WebP file.
	Successful int

	// Failed is the number of tasks that failed for any reason.
	Failed int
}

// Add folds one outcome into the summary.
func (s *RunSummary) Add(o ConversionOutcome) {
	if o.OK() {
		s.Successful++
		return
	}
	s.Failed++
}

// Total returns the number of outcomes folded so far.
func (s RunSummary) Total() int {
	return s.Successful + s.Failed
}
