package clinic

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/staff"
	"github.com/clinic/clinic/internal/domain/visit"
)

// PrimaryWaitingRoom is the room number newly registered and reactivated
// patients are placed in, by convention room 1.
const PrimaryWaitingRoom = 1

// Service implements every invariant-preserving registry operation over
// one Store. Bidirectional links (room↔patient, staff↔patient) are kept
// in sync here and nowhere else: each operation validates fully before
// mutating, so a rejected call leaves no half-updated roster.
type Service struct {
	store  *Store
	policy visit.Policy
	log    zerolog.Logger
}

// NewService creates a service over the store with the default visit
// validation policy and a disabled logger.
func NewService(store *Store) *Service {
	return &Service{
		store:  store,
		policy: visit.DefaultPolicy(),
		log:    zerolog.Nop(),
	}
}

// SetLogger attaches a logger used for operation-level events.
func (s *Service) SetLogger(log zerolog.Logger) { s.log = log }

// SetVisitPolicy overrides the visit-record validation bounds.
func (s *Service) SetVisitPolicy(p visit.Policy) { s.policy = p }

// VisitPolicy returns the active visit-record validation bounds.
func (s *Service) VisitPolicy() visit.Policy { return s.policy }

// Store returns the underlying store for lookups.
func (s *Service) Store() *Store { return s.store }

// RegisterPatient registers a candidate patient. If a patient with the
// same (first, last, DOB) identity already exists:
//   - deactivated: the existing patient is reactivated, placed in the
//     primary waiting room, and returned;
//   - active: the registration is rejected with ErrDuplicatePatient.
//
// New patients land in the primary waiting room. A missing room 1 is a
// hard error and nothing is added.
func (s *Service) RegisterPatient(candidate *patient.Patient) (*patient.Patient, error) {
	if candidate == nil {
		return nil, fmt.Errorf("register patient: %w", ErrNilArgument)
	}

	waiting := s.store.RoomByNumber(PrimaryWaitingRoom)
	if waiting == nil {
		return nil, ErrNoPrimaryWaitingRoom
	}

	existing := s.store.PatientByIdentity(candidate.FirstName, candidate.LastName, candidate.DateOfBirth)
	if existing != nil {
		if !existing.Deactivated {
			return nil, ErrDuplicatePatient
		}
		existing.Reactivate(time.Now().UTC())
		existing.SetRoom(waiting)
		waiting.AddPatient(existing.Serial)
		s.log.Info().Int("serial", existing.Serial).Str("patient", existing.FullName()).
			Msg("reactivated returning patient")
		return existing, nil
	}

	candidate.SetRoom(waiting)
	waiting.AddPatient(candidate.Serial)
	if err := s.store.AddPatient(candidate); err != nil {
		return nil, err
	}
	s.log.Info().Int("serial", candidate.Serial).Str("patient", candidate.FullName()).
		Str("room", waiting.Name).Msg("registered patient")
	return candidate, nil
}

// RegisterStaff appends a staff member. No duplicate checking is
// performed for staff.
func (s *Service) RegisterStaff(member *staff.Staff) error {
	if member == nil {
		return fmt.Errorf("register staff: %w", ErrNilArgument)
	}
	if err := s.store.AddStaff(member); err != nil {
		return err
	}
	s.log.Info().Int("serial", member.Serial).Str("staff", member.DisplayName()).
		Str("kind", string(member.Kind)).Msg("registered staff")
	return nil
}

// AssignPatientToRoom moves the patient to the named room, superseding
// any previous assignment. Rules, in order: the room must exist; an
// occupied EXAM/PROCEDURE room rejects a second patient (waiting rooms
// are exempt); a patient in an EXAM/PROCEDURE room cannot be demoted to
// a waiting room; re-assigning the current room is rejected as a no-op.
func (s *Service) AssignPatientToRoom(p *patient.Patient, roomName string) error {
	if p == nil || roomName == "" {
		return fmt.Errorf("assign room: %w", ErrNilArgument)
	}

	target := s.store.RoomByName(roomName)
	if target == nil {
		return fmt.Errorf("%q: %w", roomName, ErrRoomNotFound)
	}
	if target.Occupied() && !target.IsWaitingRoom() {
		return fmt.Errorf("%q: %w", target.Name, ErrRoomOccupied)
	}

	current := s.PatientCurrentRoom(p)
	if current != nil && !current.IsWaitingRoom() && target.IsWaitingRoom() {
		return ErrWaitingDemotion
	}
	if current != nil && current.Number == target.Number {
		return fmt.Errorf("%q: %w", target.Name, ErrAlreadyInRoom)
	}

	if current != nil {
		current.RemovePatient(p.Serial)
	}
	target.AddPatient(p.Serial)
	p.SetRoom(target)

	s.log.Info().Int("serial", p.Serial).Str("room", target.Name).Msg("assigned patient to room")
	return nil
}

// AssignStaffToPatient links a clinical staff member and a patient in
// both directions and records the patient in the staff member's lifetime
// set. Deactivated or non-clinical staff, and duplicate assignments, are
// rejected with no mutation.
func (s *Service) AssignStaffToPatient(p *patient.Patient, member *staff.Staff) error {
	if p == nil || member == nil {
		return fmt.Errorf("assign staff: %w", ErrNilArgument)
	}
	if !member.IsClinical() {
		return fmt.Errorf("%s: %w", member.FullName(), ErrNotClinical)
	}
	if member.Deactivated {
		return fmt.Errorf("%s: %w", member.DisplayName(), ErrStaffInactive)
	}
	if member.HasPatient(p.Serial) {
		return fmt.Errorf("%s: %w", member.DisplayName(), ErrAlreadyAssigned)
	}

	p.AddStaff(member.Serial)
	member.AddPatient(p.Serial)

	s.log.Info().Int("patient", p.Serial).Int("staff", member.Serial).Msg("assigned staff to patient")
	return nil
}

// UnassignStaffFromPatient removes the bidirectional link between the
// staff member and patient identified by serial number. Both rosters are
// updated in the same operation.
func (s *Service) UnassignStaffFromPatient(staffSerial, patientSerial int) error {
	member := s.store.StaffBySerial(staffSerial)
	if member == nil {
		return fmt.Errorf("serial %d: %w", staffSerial, ErrStaffNotFound)
	}
	if member.Deactivated {
		return fmt.Errorf("%s: %w", member.DisplayName(), ErrStaffInactive)
	}
	p := s.store.PatientBySerial(patientSerial)
	if p == nil {
		return fmt.Errorf("serial %d: %w", patientSerial, ErrPatientNotFound)
	}
	if !member.HasPatient(p.Serial) {
		return fmt.Errorf("%s: %w", member.DisplayName(), ErrNotAssigned)
	}

	member.RemovePatient(p.Serial)
	p.RemoveStaff(member.Serial)

	s.log.Info().Int("patient", p.Serial).Int("staff", member.Serial).Msg("unassigned staff from patient")
	return nil
}

// SendPatientHome discharges a patient with an approving staff member.
// Checking that the approver holds the Physician title is the caller's
// responsibility. Discharging an already-deactivated patient is a hard
// error carrying the prior deactivation date. On success the patient is
// deactivated and stripped from every room roster and every staff roster,
// and the patient's own care-team roster is cleared.
func (s *Service) SendPatientHome(p *patient.Patient, approver *staff.Staff) error {
	if p == nil || approver == nil {
		return fmt.Errorf("send patient home: %w", ErrNilArgument)
	}
	if p.Deactivated {
		e := &AlreadyDischargedError{Name: p.FullName()}
		if when, ok := p.LastDeactivationDate(); ok {
			e.Since = &when
		}
		return e
	}

	p.Deactivate(time.Now().UTC())
	if !p.Deactivated {
		return fmt.Errorf("failed to deactivate patient %d", p.Serial)
	}

	for _, r := range s.store.Rooms() {
		r.RemovePatient(p.Serial)
	}
	p.ClearRoom()
	for _, m := range s.store.Staff() {
		if m.IsClinical() {
			m.RemovePatient(p.Serial)
		}
	}
	p.ClearStaff()

	s.log.Info().Int("serial", p.Serial).Str("approved_by", approver.DisplayName()).
		Msg("patient sent home")
	return nil
}

// DeactivateStaff deactivates the staff member with the given serial.
// A missing or already-deactivated serial is a hard error. Clinical
// staff are unlinked from every assigned patient, both sides, before the
// flag is set. The lifetime-assignment set survives deactivation.
func (s *Service) DeactivateStaff(serial int) error {
	member := s.store.StaffBySerial(serial)
	if member == nil || member.Deactivated {
		return fmt.Errorf("serial %d: %w", serial, ErrStaffGone)
	}

	if member.IsClinical() {
		for _, ps := range member.PatientSerials {
			if p := s.store.PatientBySerial(ps); p != nil {
				p.RemoveStaff(member.Serial)
			}
		}
		member.ClearPatients()
	}
	member.Deactivated = true

	s.log.Info().Int("serial", member.Serial).Str("staff", member.DisplayName()).
		Msg("deactivated staff")
	return nil
}

// AddVisitRecord validates and appends a visit record to the patient's
// history, which stays sorted by registration time.
func (s *Service) AddVisitRecord(p *patient.Patient, registeredAt time.Time, chiefComplaint string, bodyTemperature float64) error {
	if p == nil {
		return fmt.Errorf("add visit record: %w", ErrNilArgument)
	}
	rec, err := visit.New(s.policy, registeredAt, chiefComplaint, bodyTemperature)
	if err != nil {
		return err
	}
	p.AddVisit(rec)

	s.log.Info().Int("serial", p.Serial).Time("registered_at", rec.RegisteredAt).
		Msg("added visit record")
	return nil
}

// ClearModel empties every collection in the store. Serial allocators
// keep running: serials are process-lifetime unique.
func (s *Service) ClearModel() {
	s.store.Clear()
	s.log.Info().Msg("cleared clinic model")
}
