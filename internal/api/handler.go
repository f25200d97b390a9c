package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"

	"tms-intake/internal/config"
	"tms-intake/internal/document"
	"tms-intake/internal/intake"
	"tms-intake/internal/storage"
)

// maxSubmissionBytes caps both pasted bodies and uploads.
const maxSubmissionBytes = 10 << 20

type API struct {
	db       *storage.DB
	pipeline *intake.Pipeline
	docs     *document.Parser
	log      zerolog.Logger
}

func NewAPI(db *storage.DB, cfg *config.Config, log zerolog.Logger) *API {
	return &API{
		db:       db,
		pipeline: intake.NewPipeline(intake.SQLStore{DB: db}, log),
		docs:     document.NewParser(cfg.UploadsDir),
		log:      log,
	}
}

// SubmitHandler ingests one pasted submission body
// @Summary Submit an interview/support request
// @Description Extracts labeled fields from a freeform email body, resolves them against reference data and persists the record set in one transaction
// @Tags submissions
// @Accept plain
// @Produce json
// @Param body body string true "Raw email body"
// @Success 200 {object} intake.Result
// @Failure 400 {object} map[string]string
// @Failure 422 {object} intake.Result
// @Failure 500 {object} intake.Result
// @Router /submissions [post]
func (a *API) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		http.Error(w, "no data provided", http.StatusBadRequest)
		return
	}

	a.respondSubmission(w, r, string(body))
}

// DocumentSubmitHandler ingests a submission uploaded as a document
// @Summary Submit a request as a document upload
// @Description Converts an uploaded PDF/DOCX/TXT submission to text and runs it through the intake pipeline
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Submission document (PDF, DOCX or TXT)"
// @Success 200 {object} intake.Result
// @Failure 400 {object} map[string]string
// @Failure 422 {object} intake.Result
// @Failure 500 {object} intake.Result
// @Router /submissions/document [post]
func (a *API) DocumentSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		http.Error(w, "file too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	switch ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt", ".eml":
	default:
		http.Error(w, "invalid file type (supported: PDF, DOCX, TXT)", http.StatusBadRequest)
		return
	}

	doc, err := a.docs.ParseFile(header.Filename, file)
	if err != nil {
		a.log.Error().Err(err).Str("filename", header.Filename).Msg("document parse failed")
		http.Error(w, "failed to parse document", http.StatusInternalServerError)
		return
	}

	a.respondSubmission(w, r, doc.Text)
}

func (a *API) respondSubmission(w http.ResponseWriter, r *http.Request, rawText string) {
	result, err := a.pipeline.Submit(r.Context(), rawText)
	status := http.StatusOK
	if err != nil {
		status = submissionStatus(err)
	}
	writeJSON(w, status, result)
}

// submissionStatus separates client-correctable failures (unusable or
// unclassifiable input) from storage errors.
func submissionStatus(err error) int {
	switch {
	case errors.Is(err, intake.ErrEmptySubmission),
		errors.Is(err, intake.ErrUnresolvedGender),
		errors.Is(err, intake.ErrUnresolvedState),
		errors.Is(err, intake.ErrUnresolvedTaskType),
		errors.Is(err, intake.ErrMissingEmail):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CandidateHandler fetches a stored candidate
// @Summary Get candidate by email
// @Description Returns the candidate row keyed by the given email address
// @Tags candidates
// @Produce json
// @Param email query string true "Candidate email"
// @Success 200 {object} storage.CandidateRecord
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /candidates [get]
func (a *API) CandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter required", http.StatusBadRequest)
		return
	}

	candidate, err := a.db.CandidateByEmail(r.Context(), email)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		a.log.Error().Err(err).Str("email", email).Msg("candidate lookup failed")
		http.Error(w, "lookup error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
