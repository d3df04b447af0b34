package scheduling

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z", true},
		{"partial overlap", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z", "2026-03-02T09:15:00Z", "2026-03-02T09:45:00Z", true},
		{"contained", "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z", "2026-03-02T09:15:00Z", "2026-03-02T09:30:00Z", true},
		{"touching boundary", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z", "2026-03-02T09:30:00Z", "2026-03-02T10:00:00Z", false},
		{"disjoint", "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z", "2026-03-02T11:00:00Z", "2026-03-02T11:30:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1, e1 := mustTime(t, tt.s1), mustTime(t, tt.e1)
			s2, e2 := mustTime(t, tt.s2), mustTime(t, tt.e2)
			if got := Overlaps(s1, e1, s2, e2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(s2, e2, s1, e1); got != tt.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got, err := CombineDateTime("2026-03-02", "09:30", ny)
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("local time = %02d:%02d, want 09:30", got.Hour(), got.Minute())
	}
	if got.Location() != ny {
		t.Errorf("location = %v, want %v", got.Location(), ny)
	}

	if _, err := CombineDateTime("2026-03-02", "late", ny); err == nil {
		t.Error("expected error for malformed HH:MM")
	}
}

func TestWeekdayIsLocalNotUTCShifted(t *testing.T) {
	// 2026-03-02 is a Monday everywhere; the weekday must come from the
	// clinic calendar, not from a UTC conversion of midnight local time.
	// Midnight Monday in Auckland is still Sunday in UTC.
	auckland, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	start, _, err := DayBounds("2026-03-02", auckland)
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if start.Weekday() != time.Monday {
		t.Errorf("weekday = %v, want Monday", start.Weekday())
	}
	if start.UTC().Weekday() != time.Sunday {
		t.Errorf("UTC weekday = %v, want Sunday (sanity check)", start.UTC().Weekday())
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-03-02", time.UTC)
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if want := mustTime(t, "2026-03-02T00:00:00Z"); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := mustTime(t, "2026-03-03T00:00:00Z"); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}

	if _, _, err := DayBounds("not-a-date", time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
}
