package clinic

import (
	"errors"
	"fmt"
	"time"
)

// Soft rejections: ordinary business-rule conflicts the caller is
// expected to recover from (re-prompt, pick another room). Lookups that
// miss also land here. Hard errors — nil arguments, double discharge,
// the missing primary waiting room — are separate types below and stop
// the operation with no mutation.
var (
	ErrDuplicatePatient = errors.New("patient is already registered")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomOccupied     = errors.New("room is already occupied by another patient")
	ErrAlreadyInRoom    = errors.New("patient is already assigned to this room")
	ErrWaitingDemotion  = errors.New("patient in an exam or procedure room cannot be moved to a waiting room")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffInactive    = errors.New("staff member is deactivated")
	ErrNotClinical      = errors.New("staff member is not clinical")
	ErrAlreadyAssigned  = errors.New("staff member is already assigned to this patient")
	ErrNotAssigned      = errors.New("staff member is not assigned to this patient")
)

// ErrNilArgument is the hard error for absent required inputs.
var ErrNilArgument = errors.New("required argument is missing")

// ErrNoPrimaryWaitingRoom is the hard error raised when registration
// cannot find room 1, the designated primary waiting room.
var ErrNoPrimaryWaitingRoom = errors.New("primary waiting room (room 1) not found")

// ErrStaffGone is the hard error raised when staff deactivation targets
// a serial that does not exist or is already deactivated.
var ErrStaffGone = errors.New("staff member not found or already deactivated")

// AlreadyDischargedError is the hard error for discharging a patient who
// is already deactivated. It carries the prior deactivation date when
// known.
type AlreadyDischargedError struct {
	Name  string
	Since *time.Time
}

func (e *AlreadyDischargedError) Error() string {
	if e.Since != nil {
		return fmt.Sprintf("patient %s was already discharged on %s",
			e.Name, e.Since.Format("2006-01-02"))
	}
	return fmt.Sprintf("patient %s was already discharged", e.Name)
}

// IsRejection reports whether the error is a soft business-rule
// rejection rather than a hard argument/state violation.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrDuplicatePatient, ErrRoomNotFound, ErrRoomOccupied,
		ErrAlreadyInRoom, ErrWaitingDemotion, ErrPatientNotFound,
		ErrStaffNotFound, ErrStaffInactive, ErrNotClinical,
		ErrAlreadyAssigned, ErrNotAssigned,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
