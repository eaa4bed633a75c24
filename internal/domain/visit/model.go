package visit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default body-temperature bounds in Celsius. The bounds are a
// configurable policy, not a medical claim; see Policy.
const (
	DefaultMinTemperature = 25.0
	DefaultMaxTemperature = 45.0
)

// Policy holds the validation bounds applied when a visit record is created.
type Policy struct {
	MinTemperature float64
	MaxTemperature float64
}

// DefaultPolicy returns the stock 25.0–45.0 °C policy.
func DefaultPolicy() Policy {
	return Policy{
		MinTemperature: DefaultMinTemperature,
		MaxTemperature: DefaultMaxTemperature,
	}
}

// Record is a single dated clinical encounter attached to a patient.
// Records are immutable once created and never removed from a history.
type Record struct {
	ID              uuid.UUID `json:"id"`
	RegisteredAt    time.Time `json:"registered_at"`
	ChiefComplaint  string    `json:"chief_complaint"`
	BodyTemperature float64   `json:"body_temperature"`
}

// New validates and creates a visit record under the given policy.
func New(p Policy, registeredAt time.Time, chiefComplaint string, bodyTemperature float64) (Record, error) {
	if registeredAt.IsZero() {
		return Record{}, fmt.Errorf("registration time is required")
	}
	if strings.TrimSpace(chiefComplaint) == "" {
		return Record{}, fmt.Errorf("chief complaint is required")
	}
	if bodyTemperature < p.MinTemperature || bodyTemperature > p.MaxTemperature {
		return Record{}, fmt.Errorf("body temperature %.1f°C outside allowed range %.1f–%.1f°C",
			bodyTemperature, p.MinTemperature, p.MaxTemperature)
	}
	return Record{
		ID:              uuid.New(),
		RegisteredAt:    registeredAt,
		ChiefComplaint:  chiefComplaint,
		BodyTemperature: bodyTemperature,
	}, nil
}

// WithinLastYear reports whether the record falls on or after the day one
// year before now.
func (r Record) WithinLastYear(now time.Time) bool {
	oneYearAgo := now.AddDate(-1, 0, 0)
	day := r.RegisteredAt
	return !day.Before(oneYearAgo)
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s (%.1f°C)",
		r.RegisteredAt.Format("1/2/2006 15:04:05"), r.ChiefComplaint, r.BodyTemperature)
}
