package room

import (
	"fmt"
	"strconv"
	"strings"
)

// Type classifies a room. A room's type never changes after construction.
type Type string

const (
	Exam      Type = "exam"
	Procedure Type = "procedure"
	Waiting   Type = "waiting"
)

// ParseType converts a layout keyword to a Type, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "exam":
		return Exam, nil
	case "procedure":
		return Procedure, nil
	case "waiting":
		return Waiting, nil
	}
	return "", fmt.Errorf("unknown room type: %q", s)
}

// Bounds is the room rectangle on the clinic map. Used only by external
// map rendering; the registry never interprets it.
type Bounds struct {
	LowerLeftX  int `json:"lower_left_x"`
	LowerLeftY  int `json:"lower_left_y"`
	UpperRightX int `json:"upper_right_x"`
	UpperRightY int `json:"upper_right_y"`
}

// Room is a physical clinic room. Number and Type are immutable after
// load. PatientSerials is the live roster of currently assigned patients;
// it is a non-owning back-reference maintained exclusively by the clinic
// registry.
type Room struct {
	Number         int    `json:"number"`
	Bounds         Bounds `json:"bounds"`
	Type           Type   `json:"type"`
	Name           string `json:"name"`
	PatientSerials []int  `json:"patient_serials"`
}

// ParseLine builds a room from one layout line: four rectangle integers,
// a type keyword, and the room name (which may contain spaces). The line
// must start with a digit because its leading tokens are coordinates.
func ParseLine(line string, number int) (*Room, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, fmt.Errorf("room line is empty")
	}
	if trimmed[0] < '0' || trimmed[0] > '9' {
		return nil, fmt.Errorf("invalid room line (must start with coordinates): %q", line)
	}

	parts := strings.Fields(trimmed)
	if len(parts) < 6 {
		return nil, fmt.Errorf("invalid room line (want 4 coordinates, type, name): %q", line)
	}

	var coords [4]int
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, fmt.Errorf("invalid room coordinate %q: %w", parts[i], err)
		}
		coords[i] = n
	}

	typ, err := ParseType(parts[4])
	if err != nil {
		return nil, err
	}

	return &Room{
		Number: number,
		Bounds: Bounds{
			LowerLeftX:  coords[0],
			LowerLeftY:  coords[1],
			UpperRightX: coords[2],
			UpperRightY: coords[3],
		},
		Type: typ,
		Name: strings.Join(parts[5:], " "),
	}, nil
}

// IsWaitingRoom reports whether the room is a waiting room.
func (r *Room) IsWaitingRoom() bool { return r.Type == Waiting }

// Occupied reports whether the room blocks further assignments: an EXAM
// or PROCEDURE room with at least one assigned patient. Waiting rooms
// are never occupied under this rule.
func (r *Room) Occupied() bool {
	if r.Type != Exam && r.Type != Procedure {
		return false
	}
	return len(r.PatientSerials) > 0
}

// HasPatient reports whether the serial is on the room's roster.
func (r *Room) HasPatient(serial int) bool {
	for _, s := range r.PatientSerials {
		if s == serial {
			return true
		}
	}
	return false
}

// AddPatient puts the serial on the roster if not already present.
func (r *Room) AddPatient(serial int) {
	if !r.HasPatient(serial) {
		r.PatientSerials = append(r.PatientSerials, serial)
	}
}

// RemovePatient drops the serial from the roster.
func (r *Room) RemovePatient(serial int) {
	for i, s := range r.PatientSerials {
		if s == serial {
			r.PatientSerials = append(r.PatientSerials[:i], r.PatientSerials[i+1:]...)
			return
		}
	}
}

func (r *Room) String() string {
	return fmt.Sprintf("room %d: %s (%s)", r.Number, r.Name, r.Type)
}
