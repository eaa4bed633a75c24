package clinic

import (
	"time"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/room"
	"github.com/clinic/clinic/internal/domain/staff"
)

// Reporting queries. All of these are pure reads over the full owned
// collections; none of them mutate.

// ActivePatients returns every non-deactivated patient.
func (s *Service) ActivePatients() []*patient.Patient {
	var out []*patient.Patient
	for _, p := range s.store.Patients() {
		if !p.Deactivated {
			out = append(out, p)
		}
	}
	return out
}

// ActiveClinicalStaff returns every non-deactivated clinical staff
// member.
func (s *Service) ActiveClinicalStaff() []*staff.Staff {
	var out []*staff.Staff
	for _, m := range s.store.ClinicalStaff() {
		if !m.Deactivated {
			out = append(out, m)
		}
	}
	return out
}

// PatientCurrentRoom finds the room whose roster holds the patient, by
// scanning every room, or nil if the patient holds no room.
func (s *Service) PatientCurrentRoom(p *patient.Patient) *room.Room {
	if p == nil {
		return nil
	}
	for _, r := range s.store.Rooms() {
		if r.HasPatient(p.Serial) {
			return r
		}
	}
	return nil
}

// InExamOrProcedureRoom reports whether the patient currently occupies
// an EXAM or PROCEDURE room.
func (s *Service) InExamOrProcedureRoom(p *patient.Patient) bool {
	r := s.PatientCurrentRoom(p)
	return r != nil && !r.IsWaitingRoom()
}

// PatientsInRoom returns the active patients on the room's roster.
func (s *Service) PatientsInRoom(r *room.Room) []*patient.Patient {
	if r == nil {
		return nil
	}
	var out []*patient.Patient
	for _, serial := range r.PatientSerials {
		if p := s.store.PatientBySerial(serial); p != nil && !p.Deactivated {
			out = append(out, p)
		}
	}
	return out
}

// StaffPatientCount pairs a clinical staff member with the number of
// unique patients ever assigned to them.
type StaffPatientCount struct {
	Serial             int    `json:"serial"`
	Name               string `json:"name"`
	UniquePatientCount int    `json:"unique_patient_count"`
	Active             bool   `json:"active"`
}

// StaffPatientCounts reports, per clinical staff member (deactivated
// included), the lifetime count of distinct patients ever assigned —
// independent of the current roster.
func (s *Service) StaffPatientCounts() []StaffPatientCount {
	var out []StaffPatientCount
	for _, m := range s.store.ClinicalStaff() {
		out = append(out, StaffPatientCount{
			Serial:             m.Serial,
			Name:               m.FullName(),
			UniquePatientCount: m.UniquePatientCount(),
			Active:             !m.Deactivated,
		})
	}
	return out
}

// DischargedOverYear returns deactivated patients whose last
// deactivation is more than 365 days old. Patients who were reactivated
// or never deactivated are excluded.
func (s *Service) DischargedOverYear() []*patient.Patient {
	today := time.Now().UTC()
	var out []*patient.Patient
	for _, p := range s.store.Patients() {
		if !p.Deactivated {
			continue
		}
		when, ok := p.LastDeactivationDate()
		if !ok {
			continue
		}
		if today.Sub(when) > 365*24*time.Hour {
			out = append(out, p)
		}
	}
	return out
}

// FrequentVisitors returns active patients with two or more visit
// records registered strictly after 365 days ago.
func (s *Service) FrequentVisitors() []*patient.Patient {
	cutoff := time.Now().UTC().AddDate(0, 0, -365)
	var out []*patient.Patient
	for _, p := range s.ActivePatients() {
		recent := 0
		for _, v := range p.Visits {
			if v.RegisteredAt.After(cutoff) {
				recent++
			}
		}
		if recent >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// StaffWithRecentPatientVisits returns active clinical staff having at
// least one currently assigned, non-deactivated patient whose most
// recent visit record falls within the last year.
func (s *Service) StaffWithRecentPatientVisits() []*staff.Staff {
	now := time.Now().UTC()
	var out []*staff.Staff
	for _, m := range s.ActiveClinicalStaff() {
		for _, serial := range m.PatientSerials {
			p := s.store.PatientBySerial(serial)
			if p == nil || p.Deactivated {
				continue
			}
			if last, ok := p.LastVisit(); ok && last.WithinLastYear(now) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
