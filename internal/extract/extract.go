// Package extract turns a raw interview-request email body into a map of
// canonical field values using label-anchored matching.
package extract

import (
	"sort"
	"strings"
)

// Canonical field names. These double as column-ish identifiers in results,
// so keep them snake_case.
const (
	FieldSubject        = "subject"
	FieldCandidateName  = "candidate_name"
	FieldBirthDate      = "birth_date"
	FieldGender         = "gender"
	FieldEducation      = "education"
	FieldUniversity     = "university"
	FieldExperience     = "total_experience"
	FieldState          = "state_name"
	FieldTechnology     = "technology"
	FieldEndClient      = "end_client"
	FieldInterviewRound = "interview_round"
	FieldJobTitle       = "job_title"
	FieldEmail          = "email_id"
	FieldContactNumber  = "contact_number"
	FieldInterviewAt    = "interview_datetime"
	FieldDuration       = "duration"
	FieldPreferredUser  = "preferred_support"
)

// FieldMap maps canonical field names to raw extracted values. A field is
// present only when its label matched and the captured value was non-empty,
// so callers can distinguish "not provided" from "empty".
type FieldMap map[string]string

// Get returns the value for field and whether it was provided.
func (m FieldMap) Get(field string) (string, bool) {
	v, ok := m[field]
	return v, ok
}

type labelSpec struct {
	field string
	label string
}

// labelSpecs lists the labels of the intake email template. Matching is
// case-insensitive; a value runs from its label to the start of the next
// recognized label, so multi-line values survive intact.
var labelSpecs = []labelSpec{
	{FieldSubject, "Subject:"},
	{FieldCandidateName, "Candidate Name:"},
	{FieldBirthDate, "Birth date:"},
	{FieldGender, "Gender:"},
	{FieldEducation, "Education:"},
	{FieldUniversity, "University:"},
	{FieldExperience, "Total Experience in Years:"},
	{FieldState, "State:"},
	{FieldTechnology, "Technology:"},
	{FieldEndClient, "End Client:"},
	{FieldInterviewRound, "Interview Round 1st 2nd 3rd or Final round"},
	{FieldJobTitle, "Job Title in JD:"},
	{FieldEmail, "Email ID:"},
	{FieldContactNumber, "Personal Contact Number:"},
	{FieldInterviewAt, "Data and Time of Interview (Mention time zone):"},
	{FieldDuration, "Duration"},
	{FieldPreferredUser, "Preferred Support:"},
}

type anchor struct {
	field string
	start int
	end   int
}

// Extract scans text for every known label and captures the value between
// each label and the next one in document order (or end of input for the
// last). Missing labels produce no entry; when a label appears more than
// once only its first occurrence is used.
func Extract(text string) FieldMap {
	lower := strings.ToLower(text)

	anchors := make([]anchor, 0, len(labelSpecs))
	for _, ls := range labelSpecs {
		idx := strings.Index(lower, strings.ToLower(ls.label))
		if idx < 0 {
			continue
		}
		anchors = append(anchors, anchor{field: ls.field, start: idx, end: idx + len(ls.label)})
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].start < anchors[j].start })

	fields := make(FieldMap, len(anchors))
	for i, a := range anchors {
		stop := len(text)
		if i+1 < len(anchors) {
			stop = anchors[i+1].start
		}
		if stop < a.end {
			// a longer label swallowed this one
			continue
		}
		value := strings.TrimSpace(text[a.end:stop])
		if value == "" {
			continue
		}
		if _, ok := fields[a.field]; !ok {
			fields[a.field] = value
		}
	}
	return fields
}
