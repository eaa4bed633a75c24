package clinic

import (
	"strings"
	"time"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/room"
	"github.com/clinic/clinic/internal/domain/staff"
)

// Store owns the canonical collections of rooms, patients and staff for
// one clinic, plus the serial allocators. Room and staff rosters hold
// patient serials, not copies, and only the Service mutates them.
//
// Lookups are linear scans; fine at front-desk scale.
type Store struct {
	Name string

	rooms    []*room.Room
	patients []*patient.Patient
	staff    []*staff.Staff

	patientDir *patient.Directory
	staffSeq   *staff.Sequence
}

// NewStore creates an empty store with fresh serial allocators.
func NewStore() *Store {
	return &Store{
		patientDir: patient.NewDirectory(),
		staffSeq:   staff.NewSequence(),
	}
}

// PatientDirectory exposes the serial directory for patient construction.
func (s *Store) PatientDirectory() *patient.Directory { return s.patientDir }

// StaffSequence exposes the serial sequence for staff construction.
func (s *Store) StaffSequence() *staff.Sequence { return s.staffSeq }

// AddRoom appends a room. Rooms are created once at load time.
func (s *Store) AddRoom(r *room.Room) error {
	if r == nil {
		return ErrNilArgument
	}
	s.rooms = append(s.rooms, r)
	return nil
}

// AddPatient appends a patient to the canonical list.
func (s *Store) AddPatient(p *patient.Patient) error {
	if p == nil {
		return ErrNilArgument
	}
	s.patients = append(s.patients, p)
	return nil
}

// AddStaff appends a staff member to the canonical list.
func (s *Store) AddStaff(m *staff.Staff) error {
	if m == nil {
		return ErrNilArgument
	}
	s.staff = append(s.staff, m)
	return nil
}

// Rooms returns the owned room list.
func (s *Store) Rooms() []*room.Room { return s.rooms }

// Patients returns the owned patient list, deactivated included.
func (s *Store) Patients() []*patient.Patient { return s.patients }

// Staff returns the owned staff list, deactivated included.
func (s *Store) Staff() []*staff.Staff { return s.staff }

// RoomByNumber returns the room with the given number, or nil.
func (s *Store) RoomByNumber(number int) *room.Room {
	for _, r := range s.rooms {
		if r.Number == number {
			return r
		}
	}
	return nil
}

// RoomByName returns the room with the given name, case-insensitively,
// or nil.
func (s *Store) RoomByName(name string) *room.Room {
	for _, r := range s.rooms {
		if strings.EqualFold(r.Name, name) {
			return r
		}
	}
	return nil
}

// PatientBySerial returns the patient with the given serial, or nil.
func (s *Store) PatientBySerial(serial int) *patient.Patient {
	for _, p := range s.patients {
		if p.Serial == serial {
			return p
		}
	}
	return nil
}

// PatientByName returns the first patient matching the name,
// case-insensitively, or nil. Deactivated patients are included.
func (s *Store) PatientByName(firstName, lastName string) *patient.Patient {
	for _, p := range s.patients {
		if strings.EqualFold(p.FirstName, firstName) && strings.EqualFold(p.LastName, lastName) {
			return p
		}
	}
	return nil
}

// PatientByIdentity returns the patient matching the full identity
// triple, or nil.
func (s *Store) PatientByIdentity(firstName, lastName string, dateOfBirth time.Time) *patient.Patient {
	for _, p := range s.patients {
		if p.SameIdentity(firstName, lastName, dateOfBirth) {
			return p
		}
	}
	return nil
}

// StaffBySerial returns the staff member with the given serial, or nil.
func (s *Store) StaffBySerial(serial int) *staff.Staff {
	for _, m := range s.staff {
		if m.Serial == serial {
			return m
		}
	}
	return nil
}

// ClinicalStaff returns every clinical staff member, deactivated
// included.
func (s *Store) ClinicalStaff() []*staff.Staff {
	var out []*staff.Staff
	for _, m := range s.staff {
		if m.IsClinical() {
			out = append(out, m)
		}
	}
	return out
}

// Clear empties every collection. Serial allocators are left running so
// serials are never reused within the process.
func (s *Store) Clear() {
	for _, r := range s.rooms {
		r.PatientSerials = nil
	}
	for _, p := range s.patients {
		p.ClearVisits()
	}
	s.rooms = nil
	s.patients = nil
	s.staff = nil
}
