package staff

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Kind separates staff with a clinical patient roster from everyone else.
// The only behavioral difference between the two is that clinical staff
// carry a license, a patient roster, and a lifetime-assignment set.
type Kind string

const (
	Clinical    Kind = "clinical"
	NonClinical Kind = "nonclinical"
)

// EducationLevel is the credential tier recorded for every staff member.
type EducationLevel string

const (
	Doctoral EducationLevel = "doctoral"
	Masters  EducationLevel = "masters"
	Allied   EducationLevel = "allied"
)

// ParseEducationLevel converts a layout keyword, case-insensitively.
func ParseEducationLevel(s string) (EducationLevel, error) {
	switch strings.ToLower(s) {
	case "doctoral":
		return Doctoral, nil
	case "masters":
		return Masters, nil
	case "allied":
		return Allied, nil
	}
	return "", fmt.Errorf("unknown education level: %q", s)
}

var licensePattern = regexp.MustCompile(`^\d{10}$`)

// ValidLicense reports whether the identifier is exactly 10 digits, the
// format check applied to clinical license identifiers. No checksum
// validation is performed.
func ValidLicense(id string) bool { return licensePattern.MatchString(id) }

// Sequence hands out clinic-wide staff serial numbers, shared by both
// staff kinds. Serials start at 1 and are never reused for the lifetime
// of the sequence.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence returns a sequence whose first serial is 1.
func NewSequence() *Sequence { return &Sequence{next: 1} }

// Next returns the next serial number.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return n
}

// Staff is any clinic staff member. Clinical members additionally carry
// License, PatientSerials (current roster) and the lifetime set of every
// patient serial ever assigned. Both roster fields are non-owning
// back-references maintained exclusively by the clinic registry.
type Staff struct {
	Serial         int            `json:"serial"`
	Kind           Kind           `json:"kind"`
	JobTitle       string         `json:"job_title"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EducationLevel EducationLevel `json:"education_level"`
	License        string         `json:"license,omitempty"`
	Deactivated    bool           `json:"deactivated"`
	PatientSerials []int          `json:"patient_serials,omitempty"`

	everAssigned map[int]struct{}
}

// NewClinical creates a clinical staff member. The license identifier
// must be exactly 10 digits.
func NewClinical(seq *Sequence, jobTitle, firstName, lastName string, level EducationLevel, license string) (*Staff, error) {
	if jobTitle == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("job title, first name and last name are required")
	}
	if !ValidLicense(license) {
		return nil, fmt.Errorf("license identifier must be exactly 10 digits, got %q", license)
	}
	return &Staff{
		Serial:         seq.Next(),
		Kind:           Clinical,
		JobTitle:       jobTitle,
		FirstName:      firstName,
		LastName:       lastName,
		EducationLevel: level,
		License:        license,
		everAssigned:   make(map[int]struct{}),
	}, nil
}

// NewNonClinical creates a non-clinical staff member. Non-clinical staff
// have no patient roster.
func NewNonClinical(seq *Sequence, jobTitle, firstName, lastName string, level EducationLevel) (*Staff, error) {
	if jobTitle == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("job title, first name and last name are required")
	}
	return &Staff{
		Serial:         seq.Next(),
		Kind:           NonClinical,
		JobTitle:       jobTitle,
		FirstName:      firstName,
		LastName:       lastName,
		EducationLevel: level,
	}, nil
}

// IsClinical reports whether the member carries a patient roster.
func (s *Staff) IsClinical() bool { return s.Kind == Clinical }

// IsPhysician reports whether the job title is Physician, the title
// required to approve a discharge.
func (s *Staff) IsPhysician() bool { return strings.EqualFold(s.JobTitle, "Physician") }

// FullName returns "First Last".
func (s *Staff) FullName() string { return s.FirstName + " " + s.LastName }

// Prefix derives the title prefix from the job title: "Dr." for a
// Physician, "Nr." for a Nurse, empty otherwise.
func (s *Staff) Prefix() string {
	switch {
	case strings.EqualFold(s.JobTitle, "Physician"):
		return "Dr."
	case strings.EqualFold(s.JobTitle, "Nurse"):
		return "Nr."
	}
	return ""
}

// DisplayName returns the prefixed full name.
func (s *Staff) DisplayName() string {
	if p := s.Prefix(); p != "" {
		return p + " " + s.FullName()
	}
	return s.FullName()
}

// HasPatient reports whether the serial is on the current roster.
func (s *Staff) HasPatient(serial int) bool {
	for _, p := range s.PatientSerials {
		if p == serial {
			return true
		}
	}
	return false
}

// AddPatient puts the serial on the current roster and records it in the
// lifetime set. Recording an already-known serial has no effect on the
// lifetime count.
func (s *Staff) AddPatient(serial int) {
	if !s.HasPatient(serial) {
		s.PatientSerials = append(s.PatientSerials, serial)
	}
	if s.everAssigned == nil {
		s.everAssigned = make(map[int]struct{})
	}
	s.everAssigned[serial] = struct{}{}
}

// RemovePatient drops the serial from the current roster. The lifetime
// set is untouched.
func (s *Staff) RemovePatient(serial int) {
	for i, p := range s.PatientSerials {
		if p == serial {
			s.PatientSerials = append(s.PatientSerials[:i], s.PatientSerials[i+1:]...)
			return
		}
	}
}

// ClearPatients empties the current roster, leaving the lifetime set.
func (s *Staff) ClearPatients() { s.PatientSerials = nil }

// UniquePatientCount is the number of distinct patients ever assigned,
// independent of the current roster.
func (s *Staff) UniquePatientCount() int { return len(s.everAssigned) }

func (s *Staff) String() string {
	return fmt.Sprintf("staff %d: %s (%s)", s.Serial, s.DisplayName(), s.JobTitle)
}
