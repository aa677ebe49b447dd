package vlm

import "fmt"

// SolverError reports a singular or near-singular influence system. This is
// treated as a geometry/input defect to surface, never something to patch by
// regularization or retries.
type SolverError struct {
	Reason          string
	ConditionNumber float64
}

func (e *SolverError) Error() string {
	if e.ConditionNumber > 0 {
		return fmt.Sprintf("solver: %s (estimated condition number %.3e)", e.Reason, e.ConditionNumber)
	}
	return fmt.Sprintf("solver: %s", e.Reason)
}

// OptionError reports an invalid analysis option at construction time.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("options: %s: %s; valid options are: %s", e.Field, e.Reason, validOptionFields)
}

// AnalysisStateError guards the analysis lifecycle: querying a solved-state
// value before a solve happened, or using symbolic inputs without naming the
// environment that owns them.
type AnalysisStateError struct {
	Op     string
	State  State
	Reason string
}

func (e *AnalysisStateError) Error() string {
	return fmt.Sprintf("analysis: %s in state %s: %s", e.Op, e.State, e.Reason)
}
