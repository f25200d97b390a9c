package storage

import "time"

// Candidate is the upsert payload for the candidates table. Email is the
// de-duplication key: resubmissions for the same address update the row.
type Candidate struct {
	Name            string
	Email           string
	Phone           string
	GenderID        int64
	Age             *int
	ExperienceYears *int
	Education       string
	University      string
	Technology      string
	StateID         int64
}

// Task is one interview/support event row. Exactly one is inserted per
// successful submission; the pipeline never updates it afterwards.
type Task struct {
	CandidateID    int64
	TaskTypeID     int64
	UserID         *int64
	CompanyID      *int64
	JobTitle       string
	InterviewRound string
	InterviewAt    *time.Time
	InterviewAtRaw string
	Duration       string
}

// CandidateRecord is the read model for candidate lookups.
type CandidateRecord struct {
	ID              int64      `json:"candidate_id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Age             *int       `json:"age,omitempty"`
	ExperienceYears *int       `json:"experience_years,omitempty"`
	Education       string     `json:"education"`
	University      string     `json:"university"`
	Technology      string     `json:"technology"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
