package intake

import (
	"errors"
	"fmt"
)

// Hard-failure sentinels. Temporal and derivation failures are absorbed into
// Result.Notes instead of surfacing here.
var (
	// ErrEmptySubmission means extraction produced no usable fields at all.
	ErrEmptySubmission = errors.New("submission contains no recognizable fields")

	// ErrUnresolvedGender and friends mean a required categorical field was
	// missing or matched nothing in its reference table.
	ErrUnresolvedGender   = errors.New("gender could not be resolved")
	ErrUnresolvedState    = errors.New("state could not be resolved")
	ErrUnresolvedTaskType = errors.New("subject does not match any task type")

	// ErrMissingEmail blocks the candidate upsert, which is keyed by email.
	ErrMissingEmail = errors.New("candidate email missing")
)

// Step names reported on aborted submissions.
const (
	StepResolveGender   = "resolve gender"
	StepResolveState    = "resolve state"
	StepBeginTx         = "begin transaction"
	StepUpsertCandidate = "upsert candidate"
	StepResolveTaskType = "resolve task type"
	StepCompany         = "get or create company"
	StepLookupUser      = "lookup preferred user"
	StepInsertTask      = "insert task"
	StepCommit          = "commit"
)

// StepError tags a pipeline failure with the step that aborted the
// transaction, so callers learn where the sequence stopped without any
// partial writes surviving.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

func stepErr(step string, err error) *StepError {
	return &StepError{Step: step, Err: err}
}
