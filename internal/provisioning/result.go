package provisioning

// RunResult aggregates every per-instance outcome of one provisioning run.
// Partial success stays visible: the outcome list reports which slots
// succeeded and which failed, not just an overall bit.
type RunResult struct {
	Outcomes []Outcome
	Created  int
	Failed   int
	TimedOut int
}

// Aggregate counts outcomes by kind and returns the run result.
func Aggregate(outcomes []Outcome) RunResult {
	result := RunResult{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeCreated:
			result.Created++
		case OutcomeError:
			result.Failed++
		case OutcomeTimedOut:
			result.TimedOut++
		}
	}
	return result
}

// Succeeded reports whether every instance ended up created.
func (r RunResult) Succeeded() bool {
	return r.Failed == 0 && r.TimedOut == 0 && r.Created == len(r.Outcomes)
}
