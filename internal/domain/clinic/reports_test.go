package clinic

import (
	"testing"
	"time"

	"github.com/clinic/clinic/internal/domain/staff"
)

func TestActivePatients(t *testing.T) {
	s := newTestService(t)
	a := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	b := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")
	doc := registerPhysician(t, s, "Amy", "Anguish", "1234567890")

	if err := s.SendPatientHome(b, doc); err != nil {
		t.Fatalf("send home: %v", err)
	}

	active := s.ActivePatients()
	if len(active) != 1 || active[0].Serial != a.Serial {
		t.Errorf("ActivePatients() = %v, want only %d", active, a.Serial)
	}
}

func TestActiveClinicalStaff(t *testing.T) {
	s := newTestService(t)
	doc := registerPhysician(t, s, "Amy", "Anguish", "1234567890")
	gone := registerPhysician(t, s, "Benny", "Bruise", "0333444555")
	clerk, _ := staff.NewNonClinical(s.Store().StaffSequence(), "Clerk", "Greg", "Gauze", staff.Masters)
	if err := s.RegisterStaff(clerk); err != nil {
		t.Fatalf("register clerk: %v", err)
	}
	if err := s.DeactivateStaff(gone.Serial); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active := s.ActiveClinicalStaff()
	if len(active) != 1 || active[0].Serial != doc.Serial {
		t.Errorf("ActiveClinicalStaff() should exclude deactivated and non-clinical members, got %v", active)
	}
}

func TestPatientCurrentRoom(t *testing.T) {
	s := newTestService(t)
	p := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")

	r := s.PatientCurrentRoom(p)
	if r == nil || r.Number != PrimaryWaitingRoom {
		t.Fatalf("expected room %d, got %v", PrimaryWaitingRoom, r)
	}
	if s.InExamOrProcedureRoom(p) {
		t.Error("waiting room is not an exam or procedure room")
	}

	if err := s.AssignPatientToRoom(p, "Surgical"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !s.InExamOrProcedureRoom(p) {
		t.Error("expected exam/procedure occupancy after the move")
	}

	if s.PatientCurrentRoom(nil) != nil {
		t.Error("nil patient has no room")
	}
}

func TestPatientsInRoom_ExcludesDeactivated(t *testing.T) {
	s := newTestService(t)
	a := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	b := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")
	doc := registerPhysician(t, s, "Amy", "Anguish", "1234567890")

	front := s.Store().RoomByNumber(PrimaryWaitingRoom)
	if got := len(s.PatientsInRoom(front)); got != 2 {
		t.Fatalf("expected 2 patients in the waiting room, got %d", got)
	}

	if err := s.SendPatientHome(b, doc); err != nil {
		t.Fatalf("send home: %v", err)
	}
	in := s.PatientsInRoom(front)
	if len(in) != 1 || in[0].Serial != a.Serial {
		t.Errorf("expected only the active patient, got %v", in)
	}
}

func TestStaffPatientCounts_IncludesDeactivated(t *testing.T) {
	s := newTestService(t)
	a := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	b := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")
	doc := registerPhysician(t, s, "Amy", "Anguish", "1234567890")

	if err := s.AssignStaffToPatient(a, doc); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.AssignStaffToPatient(b, doc); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.UnassignStaffFromPatient(doc.Serial, a.Serial); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if err := s.DeactivateStaff(doc.Serial); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	counts := s.StaffPatientCounts()
	if len(counts) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(counts))
	}
	got := counts[0]
	if got.UniquePatientCount != 2 {
		t.Errorf("lifetime count = %d, want 2 despite unassignment and deactivation", got.UniquePatientCount)
	}
	if got.Active {
		t.Error("entry should be flagged inactive")
	}
}

func TestDischargedOverYear(t *testing.T) {
	s := newTestService(t)
	old := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	recent := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")
	returned := registerPatient(t, s, "Clive", "Cardiac", "3/3/1983")

	now := time.Now().UTC()
	old.Deactivate(now.AddDate(0, 0, -400))
	recent.Deactivate(now.AddDate(0, 0, -30))
	returned.Deactivate(now.AddDate(0, 0, -500))
	returned.Reactivate(now.AddDate(0, 0, -100))

	out := s.DischargedOverYear()
	if len(out) != 1 || out[0].Serial != old.Serial {
		t.Errorf("expected only the long-discharged patient, got %v", out)
	}
}

func TestFrequentVisitors(t *testing.T) {
	s := newTestService(t)
	frequent := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	occasional := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")
	lapsed := registerPatient(t, s, "Clive", "Cardiac", "3/3/1983")

	now := time.Now().UTC()
	if err := s.AddVisitRecord(frequent, now.AddDate(0, 0, -10), "headache", 37.0); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := s.AddVisitRecord(frequent, now.AddDate(0, 0, -200), "cough", 37.5); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := s.AddVisitRecord(occasional, now.AddDate(0, 0, -10), "headache", 37.0); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	// Two visits, but both outside the window.
	if err := s.AddVisitRecord(lapsed, now.AddDate(0, 0, -400), "sprain", 36.8); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := s.AddVisitRecord(lapsed, now.AddDate(0, 0, -500), "sprain", 36.8); err != nil {
		t.Fatalf("add visit: %v", err)
	}

	out := s.FrequentVisitors()
	if len(out) != 1 || out[0].Serial != frequent.Serial {
		t.Errorf("expected only the two-recent-visit patient, got %v", out)
	}
}

func TestStaffWithRecentPatientVisits(t *testing.T) {
	s := newTestService(t)
	seen := registerPatient(t, s, "Aandi", "Acute", "1/1/1981")
	unseen := registerPatient(t, s, "Beth", "Bunion", "2/2/1982")

	busy := registerPhysician(t, s, "Amy", "Anguish", "1234567890")
	idle := registerPhysician(t, s, "Benny", "Bruise", "0333444555")

	if err := s.AssignStaffToPatient(seen, busy); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.AssignStaffToPatient(unseen, idle); err != nil {
		t.Fatalf("assign: %v", err)
	}

	now := time.Now().UTC()
	if err := s.AddVisitRecord(seen, now.AddDate(0, 0, -30), "headache", 37.0); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := s.AddVisitRecord(unseen, now.AddDate(0, 0, -400), "old complaint", 37.0); err != nil {
		t.Fatalf("add visit: %v", err)
	}

	out := s.StaffWithRecentPatientVisits()
	if len(out) != 1 || out[0].Serial != busy.Serial {
		t.Errorf("expected only the physician with a recently seen patient, got %v", out)
	}
}
