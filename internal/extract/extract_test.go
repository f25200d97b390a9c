package extract

import "testing"

const sampleSubmission = `Subject: Mock Interviews
Candidate Name: Jane Doe
Birth date: March 3, 1990
Gender: F
Education: Masters
University: San Jose State University
Total Experience in Years: 7 years
State: California
Technology: Java
End Client: Acme Corp
Interview Round 1st 2nd 3rd or Final round 2nd
Job Title in JD: Senior Java Developer
Email ID: jane@example.com
Personal Contact Number: 555-0134
Data and Time of Interview (Mention time zone): March 3, 2024 3:00 PM (EST)
Duration 60 minutes
Preferred Support: Ravi Kumar`

func TestExtract_FullSubmission(t *testing.T) {
	fields := Extract(sampleSubmission)

	want := map[string]string{
		FieldSubject:        "Mock Interviews",
		FieldCandidateName:  "Jane Doe",
		FieldBirthDate:      "March 3, 1990",
		FieldGender:         "F",
		FieldEducation:      "Masters",
		FieldUniversity:     "San Jose State University",
		FieldExperience:     "7 years",
		FieldState:          "California",
		FieldTechnology:     "Java",
		FieldEndClient:      "Acme Corp",
		FieldInterviewRound: "2nd",
		FieldJobTitle:       "Senior Java Developer",
		FieldEmail:          "jane@example.com",
		FieldContactNumber:  "555-0134",
		FieldInterviewAt:    "March 3, 2024 3:00 PM (EST)",
		FieldDuration:       "60 minutes",
		FieldPreferredUser:  "Ravi Kumar",
	}
	if len(fields) != len(want) {
		t.Errorf("expected %d fields, got %d: %v", len(want), len(fields), fields)
	}
	for field, value := range want {
		got, ok := fields.Get(field)
		if !ok {
			t.Errorf("field %q missing", field)
			continue
		}
		if got != value {
			t.Errorf("field %q = %q, want %q", field, got, value)
		}
	}
}

func TestExtract_MissingLabelsAbsent(t *testing.T) {
	fields := Extract("Candidate Name: John Smith\nEmail ID: john@example.com")

	if got := fields[FieldCandidateName]; got != "John Smith" {
		t.Errorf("candidate name = %q", got)
	}
	for _, field := range []string{FieldGender, FieldState, FieldSubject, FieldDuration} {
		if v, ok := fields.Get(field); ok {
			t.Errorf("field %q should be absent, got %q", field, v)
		}
	}
}

func TestExtract_EmptyValueAbsent(t *testing.T) {
	fields := Extract("Gender:\nEducation: BS")

	if v, ok := fields.Get(FieldGender); ok {
		t.Errorf("empty gender should be absent, got %q", v)
	}
	if fields[FieldEducation] != "BS" {
		t.Errorf("education = %q", fields[FieldEducation])
	}
}

func TestExtract_DuplicateLabelFirstWins(t *testing.T) {
	fields := Extract("Technology: Java\nTechnology: Python")

	// The second occurrence is never anchored, so it is swallowed into the
	// first value per the next-label rule.
	if got := fields[FieldTechnology]; got != "Java\nTechnology: Python" {
		t.Errorf("technology = %q", got)
	}
}

func TestExtract_ValueSpansLines(t *testing.T) {
	fields := Extract("Education: Bachelor of Science\nComputer Engineering\nUniversity: MIT")

	if got := fields[FieldEducation]; got != "Bachelor of Science\nComputer Engineering" {
		t.Errorf("education = %q", got)
	}
	if got := fields[FieldUniversity]; got != "MIT" {
		t.Errorf("university = %q", got)
	}
}

func TestExtract_CaseInsensitiveLabels(t *testing.T) {
	fields := Extract("GENDER: Male\nstate: Texas")

	if fields[FieldGender] != "Male" {
		t.Errorf("gender = %q", fields[FieldGender])
	}
	if fields[FieldState] != "Texas" {
		t.Errorf("state = %q", fields[FieldState])
	}
}

func TestExtract_NoLabels(t *testing.T) {
	fields := Extract("hello, please schedule something for tomorrow")

	if len(fields) != 0 {
		t.Errorf("expected no fields, got %v", fields)
	}
}
