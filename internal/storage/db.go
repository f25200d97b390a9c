package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"tms-intake/internal/match"
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database connection")
	}
}

// Genders returns the gender reference table in id order.
func (db *DB) Genders(ctx context.Context) ([]match.Entry, error) {
	return db.referenceEntries(ctx, `SELECT gender_id, gender_name FROM genders ORDER BY gender_id`)
}

// States returns the state reference table in id order.
func (db *DB) States(ctx context.Context) ([]match.Entry, error) {
	return db.referenceEntries(ctx, `SELECT state_id, state_name FROM states ORDER BY state_id`)
}

// TaskTypes returns the task-type catalog in id order.
func (db *DB) TaskTypes(ctx context.Context) ([]match.Entry, error) {
	return db.referenceEntries(ctx, `SELECT task_type_id, task_type_name FROM task_types ORDER BY task_type_id`)
}

func (db *DB) referenceEntries(ctx context.Context, query string) ([]match.Entry, error) {
	rows, err := db.connection.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []match.Entry
	for rows.Next() {
		var e match.Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CandidateByEmail fetches a stored candidate; sql.ErrNoRows when absent.
func (db *DB) CandidateByEmail(ctx context.Context, email string) (*CandidateRecord, error) {
	c := &CandidateRecord{}
	query := `SELECT candidate_id, name, email, phone, age, experience_years, education, university, technology, updated_at
	          FROM candidates WHERE email = $1`
	err := db.connection.QueryRowContext(ctx, query, email).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Age, &c.ExperienceYears,
		&c.Education, &c.University, &c.Technology, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Begin opens the submission-scoped transaction for the write sequence.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps one submission's transaction. All writes of the pipeline go
// through it so a failure at any step rolls everything back.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// UpsertCandidate inserts the candidate or, when the email already exists,
// updates the mutable attributes in place. The conflict clause keeps the
// upsert atomic under concurrent submissions for the same address.
func (t *Tx) UpsertCandidate(ctx context.Context, c Candidate) (int64, error) {
	query := `INSERT INTO candidates (name, email, phone, gender_id, age, experience_years, education, university, technology, state_id, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	          ON CONFLICT (email) DO UPDATE
	            SET phone = EXCLUDED.phone,
	                age = EXCLUDED.age,
	                experience_years = EXCLUDED.experience_years,
	                education = EXCLUDED.education,
	                university = EXCLUDED.university,
	                technology = EXCLUDED.technology,
	                state_id = EXCLUDED.state_id,
	                updated_at = NOW()
	          RETURNING candidate_id`
	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		c.Name, c.Email, c.Phone, c.GenderID, c.Age, c.ExperienceYears,
		c.Education, c.University, c.Technology, c.StateID,
	).Scan(&id)
	return id, err
}

// GetOrCreateCompany returns the id for an exact company name, creating the
// row on first sighting. The do-nothing-style conflict update makes the
// RETURNING clause yield the id in both branches.
func (t *Tx) GetOrCreateCompany(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO companies (company_name)
	          VALUES ($1)
	          ON CONFLICT (company_name) DO UPDATE SET company_name = EXCLUDED.company_name
	          RETURNING company_id`
	var id int64
	err := t.tx.QueryRowContext(ctx, query, name).Scan(&id)
	return id, err
}

// FindUserByName looks up a staff user by exact name. A missing user is not
// an error: the second return reports whether one was found.
func (t *Tx) FindUserByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `SELECT user_id FROM users WHERE user_name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// InsertTask writes the event row referencing the resolved entities.
func (t *Tx) InsertTask(ctx context.Context, task Task) (int64, error) {
	query := `INSERT INTO tasks (candidate_id, task_type_id, user_id, company_id, job_title, interview_round, interview_at, interview_at_raw, duration, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	          RETURNING task_id`
	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		task.CandidateID, task.TaskTypeID, task.UserID, task.CompanyID,
		task.JobTitle, task.InterviewRound, task.InterviewAt, task.InterviewAtRaw, task.Duration,
	).Scan(&id)
	return id, err
}
