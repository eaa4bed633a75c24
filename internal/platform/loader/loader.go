// Package loader reads a clinic layout text file and seeds a store
// from it.
//
// The format is line-oriented: the clinic name, a room count followed
// by that many room lines, a staff count followed by staff lines, and
// a patient count followed by patient lines. Blank lines are skipped.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clinic/clinic/internal/domain/clinic"
	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/room"
	"github.com/clinic/clinic/internal/domain/staff"
)

// Load parses a clinic layout and returns a populated store. Seeded
// patients are placed directly into their listed rooms, bypassing the
// registration flow.
func Load(r io.Reader) (*clinic.Store, error) {
	sc := &sectionScanner{sc: bufio.NewScanner(r)}
	store := clinic.NewStore()

	name, err := sc.nextLine()
	if err != nil {
		return nil, fmt.Errorf("clinic name: %w", err)
	}
	store.Name = name

	roomCount, err := sc.nextCount("room")
	if err != nil {
		return nil, err
	}
	for i := 0; i < roomCount; i++ {
		line, err := sc.nextLine()
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", i+1, err)
		}
		r, err := room.ParseLine(line, i+1)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", i+1, err)
		}
		if err := store.AddRoom(r); err != nil {
			return nil, err
		}
	}

	staffCount, err := sc.nextCount("staff")
	if err != nil {
		return nil, err
	}
	for i := 0; i < staffCount; i++ {
		line, err := sc.nextLine()
		if err != nil {
			return nil, fmt.Errorf("staff %d: %w", i+1, err)
		}
		m, err := parseStaffLine(store.StaffSequence(), line)
		if err != nil {
			return nil, fmt.Errorf("staff %d: %w", i+1, err)
		}
		if err := store.AddStaff(m); err != nil {
			return nil, err
		}
	}

	patientCount, err := sc.nextCount("patient")
	if err != nil {
		return nil, err
	}
	for i := 0; i < patientCount; i++ {
		line, err := sc.nextLine()
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i+1, err)
		}
		if err := seedPatient(store, line); err != nil {
			return nil, fmt.Errorf("patient %d: %w", i+1, err)
		}
	}

	return store, nil
}

// LoadFile opens and parses the layout file at path.
func LoadFile(path string) (*clinic.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// parseStaffLine parses "jobTitle firstName lastName educationLevel
// identifier". A ten-digit identifier marks the member as clinical;
// anything else is a non-clinical identifier (e.g. a CPR level) and is
// not stored.
func parseStaffLine(seq *staff.Sequence, line string) (*staff.Staff, error) {
	parts := strings.Fields(line)
	if len(parts) < 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d", len(parts))
	}
	jobTitle, firstName, lastName := parts[0], parts[1], parts[2]

	level, err := staff.ParseEducationLevel(parts[3])
	if err != nil {
		return nil, err
	}

	identifier := parts[4]
	if staff.ValidLicense(identifier) {
		return staff.NewClinical(seq, jobTitle, firstName, lastName, level, identifier)
	}
	return staff.NewNonClinical(seq, jobTitle, firstName, lastName, level)
}

// seedPatient parses "roomNumber firstName lastName dateOfBirth" and
// places the patient into the listed room.
func seedPatient(store *clinic.Store, line string) error {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	roomNumber, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("room number %q: %w", parts[0], err)
	}
	r := store.RoomByNumber(roomNumber)
	if r == nil {
		return fmt.Errorf("room %d: %w", roomNumber, clinic.ErrRoomNotFound)
	}

	dob, err := time.Parse(patient.DOBLayout, parts[3])
	if err != nil {
		return fmt.Errorf("date of birth %q: %w", parts[3], err)
	}

	p, err := patient.New(store.PatientDirectory(), parts[1], parts[2], dob)
	if err != nil {
		return err
	}
	p.SetRoom(r)
	r.AddPatient(p.Serial)
	return store.AddPatient(p)
}

// sectionScanner walks the layout line by line, skipping blanks.
type sectionScanner struct {
	sc *bufio.Scanner
}

func (s *sectionScanner) nextLine() (string, error) {
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (s *sectionScanner) nextCount(section string) (int, error) {
	line, err := s.nextLine()
	if err != nil {
		return 0, fmt.Errorf("%s count: %w", section, err)
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%s count %q: %w", section, line, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s count %d is negative", section, n)
	}
	return n, nil
}
