// Package intake runs the extraction-resolution-persistence pipeline for a
// single submission: label-anchored field extraction, fuzzy resolution of
// categorical fields against reference tables, and an ordered transactional
// write of the normalized record set.
package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tms-intake/internal/extract"
	"tms-intake/internal/match"
	"tms-intake/internal/storage"
)

// Store is the storage surface the pipeline needs: reference-table reads
// plus a transaction for the write sequence.
type Store interface {
	Genders(ctx context.Context) ([]match.Entry, error)
	States(ctx context.Context) ([]match.Entry, error)
	TaskTypes(ctx context.Context) ([]match.Entry, error)
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one submission-scoped transaction. Commit applies all writes
// atomically; Rollback discards them.
type Tx interface {
	UpsertCandidate(ctx context.Context, c storage.Candidate) (int64, error)
	GetOrCreateCompany(ctx context.Context, name string) (int64, error)
	FindUserByName(ctx context.Context, name string) (int64, bool, error)
	InsertTask(ctx context.Context, t storage.Task) (int64, error)
	Commit() error
	Rollback() error
}

// State is the terminal state of a submission.
type State string

const (
	StatePersisted State = "persisted"
	StateFailed    State = "failed"
	StateAborted   State = "aborted"
)

// Result reports one processed submission. Notes carry per-request
// diagnostics for soft failures that did not stop the pipeline, such as an
// unparseable interview datetime.
type Result struct {
	SubmissionID string           `json:"submission_id"`
	State        State            `json:"state"`
	Fields       extract.FieldMap `json:"fields"`
	CandidateID  int64            `json:"candidate_id,omitempty"`
	TaskID       int64            `json:"task_id,omitempty"`
	CompanyID    *int64           `json:"company_id,omitempty"`
	UserID       *int64           `json:"user_id,omitempty"`
	InterviewAt  *time.Time       `json:"interview_at,omitempty"`
	FailedStep   string           `json:"failed_step,omitempty"`
	Notes        []string         `json:"notes,omitempty"`
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Pipeline sequences extraction, reference resolution and the transactional
// write for one submission. It owns commit/rollback; no partial writes
// survive a failed step.
type Pipeline struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewPipeline(store Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{store: store, log: log, now: time.Now}
}

// Submit processes one raw submission body end to end. The returned Result
// is always non-nil and reports the terminal state; on failure the error is
// either ErrEmptySubmission or a *StepError naming the aborted step.
func (p *Pipeline) Submit(ctx context.Context, rawText string) (*Result, error) {
	res := &Result{SubmissionID: uuid.New().String()}

	res.Fields = extract.Extract(rawText)
	if len(res.Fields) == 0 {
		res.State = StateFailed
		p.log.Warn().Str("submission_id", res.SubmissionID).Msg("no recognizable fields in submission")
		return res, ErrEmptySubmission
	}

	if raw, ok := res.Fields.Get(extract.FieldInterviewAt); ok {
		if t, ok := extract.NormalizeDateTime(raw); ok {
			res.InterviewAt = &t
		} else {
			res.note("interview datetime %q not parseable, keeping raw value", raw)
		}
	}

	if err := p.persist(ctx, res); err != nil {
		res.State = StateAborted
		var se *StepError
		if errors.As(err, &se) {
			res.FailedStep = se.Step
		}
		p.log.Warn().Err(err).
			Str("submission_id", res.SubmissionID).
			Str("step", res.FailedStep).
			Msg("submission aborted")
		return res, err
	}

	res.State = StatePersisted
	p.log.Info().
		Str("submission_id", res.SubmissionID).
		Int64("candidate_id", res.CandidateID).
		Int64("task_id", res.TaskID).
		Msg("submission persisted")
	return res, nil
}

// persist runs the ordered write sequence. Any step error aborts the whole
// transaction; the deferred rollback is a no-op after a successful commit.
func (p *Pipeline) persist(ctx context.Context, res *Result) error {
	fields := res.Fields

	genders, err := p.store.Genders(ctx)
	if err != nil {
		return stepErr(StepResolveGender, err)
	}
	genderID, ok := match.Resolve(fields[extract.FieldGender], genders)
	if !ok {
		return stepErr(StepResolveGender, ErrUnresolvedGender)
	}

	states, err := p.store.States(ctx)
	if err != nil {
		return stepErr(StepResolveState, err)
	}
	stateID, ok := match.Resolve(fields[extract.FieldState], states)
	if !ok {
		return stepErr(StepResolveState, ErrUnresolvedState)
	}

	email, ok := fields.Get(extract.FieldEmail)
	if !ok {
		return stepErr(StepUpsertCandidate, ErrMissingEmail)
	}

	cand := storage.Candidate{
		Name:       fields[extract.FieldCandidateName],
		Email:      email,
		Phone:      fields[extract.FieldContactNumber],
		GenderID:   genderID,
		Education:  fields[extract.FieldEducation],
		University: fields[extract.FieldUniversity],
		Technology: fields[extract.FieldTechnology],
		StateID:    stateID,
	}
	if yrs, ok := extract.Years(fields[extract.FieldExperience]); ok {
		cand.ExperienceYears = &yrs
	}
	if age, ok := extract.Age(fields[extract.FieldBirthDate], p.now()); ok {
		cand.Age = &age
	}

	tx, err := p.store.Begin(ctx)
	if err != nil {
		return stepErr(StepBeginTx, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	candidateID, err := tx.UpsertCandidate(ctx, cand)
	if err != nil {
		return stepErr(StepUpsertCandidate, err)
	}
	res.CandidateID = candidateID

	taskTypes, err := p.store.TaskTypes(ctx)
	if err != nil {
		return stepErr(StepResolveTaskType, err)
	}
	taskTypeID, ok := match.Resolve(fields[extract.FieldSubject], taskTypes)
	if !ok {
		return stepErr(StepResolveTaskType, ErrUnresolvedTaskType)
	}

	task := storage.Task{
		CandidateID:    candidateID,
		TaskTypeID:     taskTypeID,
		JobTitle:       fields[extract.FieldJobTitle],
		InterviewRound: fields[extract.FieldInterviewRound],
		InterviewAt:    res.InterviewAt,
		InterviewAtRaw: fields[extract.FieldInterviewAt],
		Duration:       fields[extract.FieldDuration],
	}

	if client, ok := fields.Get(extract.FieldEndClient); ok {
		companyID, err := tx.GetOrCreateCompany(ctx, client)
		if err != nil {
			return stepErr(StepCompany, err)
		}
		task.CompanyID = &companyID
		res.CompanyID = &companyID
	}

	if name, ok := fields.Get(extract.FieldPreferredUser); ok {
		userID, found, err := tx.FindUserByName(ctx, name)
		if err != nil {
			return stepErr(StepLookupUser, err)
		}
		if found {
			task.UserID = &userID
			res.UserID = &userID
		} else {
			res.note("preferred support %q not found, recording task without a user", name)
		}
	}

	taskID, err := tx.InsertTask(ctx, task)
	if err != nil {
		return stepErr(StepInsertTask, err)
	}
	res.TaskID = taskID

	if err := tx.Commit(); err != nil {
		return stepErr(StepCommit, err)
	}
	committed = true
	return nil
}
