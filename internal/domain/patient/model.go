package patient

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinic/clinic/internal/domain/room"
	"github.com/clinic/clinic/internal/domain/visit"
)

// DOBLayout is the wire format for patient dates of birth.
const DOBLayout = "1/2/2006"

// Directory hands out patient serial numbers keyed by (first name, last
// name, date of birth). Identical triples receive the same serial even
// across independent constructions, which is how duplicate registration
// is detected. Serials start at 1 and are never reused for the lifetime
// of the directory.
type Directory struct {
	mu      sync.Mutex
	next    int
	serials map[string]int
}

// NewDirectory returns a directory whose first serial is 1.
func NewDirectory() *Directory {
	return &Directory{next: 1, serials: make(map[string]int)}
}

func identityKey(firstName, lastName string, dateOfBirth time.Time) string {
	return strings.ToLower(firstName) + "|" + strings.ToLower(lastName) + "|" +
		dateOfBirth.Format(DOBLayout)
}

// Serial returns the serial for the identity triple, allocating a new
// one on first sight.
func (d *Directory) Serial(firstName, lastName string, dateOfBirth time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := identityKey(firstName, lastName, dateOfBirth)
	if s, ok := d.serials[key]; ok {
		return s
	}
	s := d.next
	d.next++
	d.serials[key] = s
	return s
}

// Deactivation is one entry in a patient's deactivation audit trail. A
// nil ReactivatedAt marks the entry as still open; a patient has at most
// one open entry at a time.
type Deactivation struct {
	DeactivatedAt time.Time  `json:"deactivated_at"`
	ReactivatedAt *time.Time `json:"reactivated_at,omitempty"`
}

// Patient is a registered clinic patient. RoomNumber/RoomName/RoomType
// mirror the current room assignment; StaffSerials is the roster of
// currently assigned clinical staff. Both are non-owning back-references
// maintained exclusively by the clinic registry.
type Patient struct {
	Serial        int            `json:"serial"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	DateOfBirth   time.Time      `json:"date_of_birth"`
	RoomNumber    int            `json:"room_number,omitempty"`
	RoomName      string         `json:"room_name,omitempty"`
	RoomType      room.Type      `json:"room_type,omitempty"`
	Deactivated   bool           `json:"deactivated"`
	Visits        []visit.Record `json:"visits,omitempty"`
	Deactivations []Deactivation `json:"deactivations,omitempty"`
	StaffSerials  []int          `json:"staff_serials,omitempty"`
}

// New creates a patient, obtaining its serial from the directory. Callers
// parse and validate the date of birth beforehand.
func New(dir *Directory, firstName, lastName string, dateOfBirth time.Time) (*Patient, error) {
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first name and last name are required")
	}
	if dateOfBirth.IsZero() {
		return nil, fmt.Errorf("date of birth is required")
	}
	return &Patient{
		Serial:      dir.Serial(firstName, lastName, dateOfBirth),
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
	}, nil
}

// FullName returns "First Last".
func (p *Patient) FullName() string { return p.FirstName + " " + p.LastName }

// SameIdentity reports whether the two patients share the identity triple
// that keys serial allocation. Names compare case-insensitively.
func (p *Patient) SameIdentity(firstName, lastName string, dateOfBirth time.Time) bool {
	return strings.EqualFold(p.FirstName, firstName) &&
		strings.EqualFold(p.LastName, lastName) &&
		p.DateOfBirth.Equal(dateOfBirth)
}

// SetRoom records the patient's current room.
func (p *Patient) SetRoom(r *room.Room) {
	p.RoomNumber = r.Number
	p.RoomName = r.Name
	p.RoomType = r.Type
}

// ClearRoom drops the patient's current room fields.
func (p *Patient) ClearRoom() {
	p.RoomNumber = 0
	p.RoomName = ""
	p.RoomType = ""
}

// Deactivate flags the patient as deactivated at the given date, opening
// a new history entry. Deactivating an already-deactivated patient is a
// no-op; callers enforce their own double-discharge rules.
func (p *Patient) Deactivate(at time.Time) {
	if p.Deactivated {
		return
	}
	p.Deactivated = true
	p.Deactivations = append(p.Deactivations, Deactivation{DeactivatedAt: at})
}

// Reactivate clears the deactivated flag and closes the open history
// entry, if any, with the given date.
func (p *Patient) Reactivate(at time.Time) {
	if !p.Deactivated {
		return
	}
	p.Deactivated = false
	if n := len(p.Deactivations); n > 0 && p.Deactivations[n-1].ReactivatedAt == nil {
		t := at
		p.Deactivations[n-1].ReactivatedAt = &t
	}
}

// LastDeactivationDate returns the date of the still-open deactivation
// entry, or false if the patient was reactivated or never deactivated.
func (p *Patient) LastDeactivationDate() (time.Time, bool) {
	n := len(p.Deactivations)
	if n == 0 || p.Deactivations[n-1].ReactivatedAt != nil {
		return time.Time{}, false
	}
	return p.Deactivations[n-1].DeactivatedAt, true
}

// AddVisit appends a record to the visit history and re-sorts the
// history by registration time ascending.
func (p *Patient) AddVisit(rec visit.Record) {
	p.Visits = append(p.Visits, rec)
	sort.Slice(p.Visits, func(i, j int) bool {
		return p.Visits[i].RegisteredAt.Before(p.Visits[j].RegisteredAt)
	})
}

// LastVisit returns the most recent visit record, or false if the
// history is empty.
func (p *Patient) LastVisit() (visit.Record, bool) {
	if len(p.Visits) == 0 {
		return visit.Record{}, false
	}
	return p.Visits[len(p.Visits)-1], true
}

// ClearVisits empties the visit history.
func (p *Patient) ClearVisits() { p.Visits = nil }

// HasStaff reports whether the staff serial is on the care-team roster.
func (p *Patient) HasStaff(serial int) bool {
	for _, s := range p.StaffSerials {
		if s == serial {
			return true
		}
	}
	return false
}

// AddStaff puts the staff serial on the care-team roster if absent.
func (p *Patient) AddStaff(serial int) {
	if !p.HasStaff(serial) {
		p.StaffSerials = append(p.StaffSerials, serial)
	}
}

// RemoveStaff drops the staff serial from the care-team roster.
func (p *Patient) RemoveStaff(serial int) {
	for i, s := range p.StaffSerials {
		if s == serial {
			p.StaffSerials = append(p.StaffSerials[:i], p.StaffSerials[i+1:]...)
			return
		}
	}
}

// ClearStaff empties the care-team roster.
func (p *Patient) ClearStaff() { p.StaffSerials = nil }

func (p *Patient) String() string {
	return fmt.Sprintf("patient %d: %s (DOB %s)",
		p.Serial, p.FullName(), p.DateOfBirth.Format(DOBLayout))
}
