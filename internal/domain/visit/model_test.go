package visit

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew_Valid(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	rec, err := New(DefaultPolicy(), at, "headache", 37.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected a generated record ID")
	}
	if !rec.RegisteredAt.Equal(at) {
		t.Errorf("registered at = %v, want %v", rec.RegisteredAt, at)
	}
	if rec.ChiefComplaint != "headache" {
		t.Errorf("chief complaint = %q", rec.ChiefComplaint)
	}
}

func TestNew_Rejections(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		registeredAt time.Time
		complaint    string
		temperature  float64
	}{
		{"zero time", time.Time{}, "headache", 37.0},
		{"blank complaint", at, "   ", 37.0},
		{"temperature below bound", at, "hypothermia", 24.9},
		{"temperature above bound", at, "fever", 45.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(DefaultPolicy(), tt.registeredAt, tt.complaint, tt.temperature); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNew_BoundsAreInclusive(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	for _, temp := range []float64{DefaultMinTemperature, DefaultMaxTemperature} {
		if _, err := New(DefaultPolicy(), at, "check", temp); err != nil {
			t.Errorf("temperature %.1f should be accepted: %v", temp, err)
		}
	}
}

func TestNew_CustomPolicy(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	p := Policy{MinTemperature: 30, MaxTemperature: 40}

	if _, err := New(p, at, "check", 29.0); err == nil {
		t.Error("expected rejection below the custom minimum")
	}
	if _, err := New(p, at, "check", 35.0); err != nil {
		t.Errorf("expected acceptance inside the custom bounds: %v", err)
	}
}

func TestWithinLastYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"yesterday", now.AddDate(0, 0, -1), true},
		{"eleven months ago", now.AddDate(0, -11, 0), true},
		{"exactly one year ago", now.AddDate(-1, 0, 0), true},
		{"over a year ago", now.AddDate(-1, 0, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{RegisteredAt: tt.at}
			if got := rec.WithinLastYear(now); got != tt.want {
				t.Errorf("WithinLastYear(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestRecordString(t *testing.T) {
	rec := Record{
		RegisteredAt:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		ChiefComplaint:  "headache",
		BodyTemperature: 37.2,
	}
	s := rec.String()
	if !strings.Contains(s, "headache") || !strings.Contains(s, "37.2") {
		t.Errorf("unexpected String(): %q", s)
	}
}
