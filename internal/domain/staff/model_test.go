package staff

import (
	"testing"
)

func TestSequence(t *testing.T) {
	seq := NewSequence()
	for want := 1; want <= 3; want++ {
		if got := seq.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
}

func TestValidLicense(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234567890", true},
		{"0000000000", true},
		{"123456789", false},
		{"12345678901", false},
		{"12345abcde", false},
		{"B", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidLicense(tt.in); got != tt.want {
			t.Errorf("ValidLicense(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewClinical(t *testing.T) {
	seq := NewSequence()
	m, err := NewClinical(seq, "Physician", "Amy", "Anguish", Doctoral, "1234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsClinical() {
		t.Error("expected clinical kind")
	}
	if m.Serial != 1 {
		t.Errorf("serial = %d, want 1", m.Serial)
	}
	if !m.IsPhysician() {
		t.Error("expected physician")
	}

	if _, err := NewClinical(seq, "Physician", "Bad", "License", Doctoral, "12345"); err == nil {
		t.Error("expected error for short license")
	}
	if _, err := NewClinical(seq, "", "No", "Title", Doctoral, "1234567890"); err == nil {
		t.Error("expected error for empty job title")
	}
}

func TestNewNonClinical(t *testing.T) {
	seq := NewSequence()
	m, err := NewNonClinical(seq, "Reception", "Frank", "Funk", Allied)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsClinical() {
		t.Error("expected non-clinical kind")
	}
	if m.License != "" {
		t.Errorf("non-clinical staff should carry no license, got %q", m.License)
	}
}

func TestDisplayName(t *testing.T) {
	seq := NewSequence()

	dr, _ := NewClinical(seq, "Physician", "Amy", "Anguish", Doctoral, "1234567890")
	if got := dr.DisplayName(); got != "Dr. Amy Anguish" {
		t.Errorf("DisplayName() = %q, want Dr. prefix", got)
	}

	nr, _ := NewClinical(seq, "Nurse", "Camila", "Crisis", Doctoral, "2224443338")
	if got := nr.DisplayName(); got != "Nr. Camila Crisis" {
		t.Errorf("DisplayName() = %q, want Nr. prefix", got)
	}

	clerk, _ := NewNonClinical(seq, "Clerk", "Greg", "Gauze", Masters)
	if got := clerk.DisplayName(); got != "Greg Gauze" {
		t.Errorf("DisplayName() = %q, want no prefix", got)
	}
}

func TestLifetimeAssignmentSet(t *testing.T) {
	seq := NewSequence()
	m, _ := NewClinical(seq, "Physician", "Amy", "Anguish", Doctoral, "1234567890")

	m.AddPatient(10)
	m.AddPatient(11)
	m.AddPatient(10)
	if got := m.UniquePatientCount(); got != 2 {
		t.Errorf("UniquePatientCount() = %d, want 2 after duplicate add", got)
	}

	m.RemovePatient(10)
	if m.HasPatient(10) {
		t.Error("serial 10 should be off the current roster")
	}
	if got := m.UniquePatientCount(); got != 2 {
		t.Errorf("UniquePatientCount() = %d, removal must not shrink the lifetime set", got)
	}

	// Re-assigning a previously removed patient keeps the count stable.
	m.AddPatient(10)
	if got := m.UniquePatientCount(); got != 2 {
		t.Errorf("UniquePatientCount() = %d after re-assignment, want 2", got)
	}

	m.ClearPatients()
	if len(m.PatientSerials) != 0 {
		t.Error("ClearPatients should empty the current roster")
	}
	if got := m.UniquePatientCount(); got != 2 {
		t.Errorf("UniquePatientCount() = %d after clear, want 2", got)
	}
}

func TestParseEducationLevel(t *testing.T) {
	if lvl, err := ParseEducationLevel("DOCTORAL"); err != nil || lvl != Doctoral {
		t.Errorf("ParseEducationLevel(DOCTORAL) = %q, %v", lvl, err)
	}
	if _, err := ParseEducationLevel("wizardry"); err == nil {
		t.Error("expected error for unknown level")
	}
}
