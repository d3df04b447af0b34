package scheduling

import (
	"testing"
	"time"

	"github.com/clinicore/clinic-backend/models"
)

func slot(day models.DayOfWeek, start, end string, available bool) models.WorkingHour {
	return models.WorkingHour{
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func booked(t *testing.T, start, end string) models.Appointment {
	t.Helper()
	return models.Appointment{
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Status:    models.StatusScheduled,
	}
}

// 2026-03-02 is a Monday.
const monday = "2026-03-02"

func TestFreeWindowsRemovesBookedSlots(t *testing.T) {
	template := []models.WorkingHour{
		slot(models.Monday, "09:00", "09:30", true),
		slot(models.Monday, "09:30", "10:00", true),
	}
	appointments := []models.Appointment{
		booked(t, "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z"),
	}

	free := FreeWindows(template, appointments, monday, time.UTC)
	if len(free) != 1 {
		t.Fatalf("got %d free windows, want 1: %+v", len(free), free)
	}
	if !free[0].Start.Equal(mustTime(t, "2026-03-02T09:30:00Z")) ||
		!free[0].End.Equal(mustTime(t, "2026-03-02T10:00:00Z")) {
		t.Errorf("free window = %v – %v, want 09:30 – 10:00", free[0].Start, free[0].End)
	}
}

func TestFreeWindowsNeverIntersectsBookings(t *testing.T) {
	template := []models.WorkingHour{
		slot(models.Monday, "09:00", "10:00", true),
		slot(models.Monday, "10:00", "11:00", true),
		slot(models.Monday, "11:00", "12:00", true),
	}
	appointments := []models.Appointment{
		booked(t, "2026-03-02T10:00:00Z", "2026-03-02T10:30:00Z"),
	}

	free := FreeWindows(template, appointments, monday, time.UTC)
	for _, w := range free {
		if Overlaps(w.Start, w.End, appointments[0].StartTime, appointments[0].EndTime) {
			t.Errorf("free window %v – %v intersects booking", w.Start, w.End)
		}
	}
}

func TestFreeWindowsSkipsUnavailableSlots(t *testing.T) {
	template := []models.WorkingHour{
		slot(models.Monday, "09:00", "09:30", false),
		slot(models.Monday, "09:30", "10:00", true),
	}

	free := FreeWindows(template, nil, monday, time.UTC)
	if len(free) != 1 {
		t.Fatalf("got %d free windows, want 1", len(free))
	}
	if !free[0].Start.Equal(mustTime(t, "2026-03-02T09:30:00Z")) {
		t.Errorf("free window starts %v, want 09:30", free[0].Start)
	}
}

func TestFreeWindowsMergesOverlappingAndAdjacent(t *testing.T) {
	// Unsorted, overlapping template rows: the result is the minimal
	// disjoint set, sorted by start.
	template := []models.WorkingHour{
		slot(models.Monday, "10:00", "11:00", true),
		slot(models.Monday, "09:00", "09:45", true),
		slot(models.Monday, "09:30", "10:00", true),
	}

	free := FreeWindows(template, nil, monday, time.UTC)
	if len(free) != 1 {
		t.Fatalf("got %d free windows, want 1 merged window: %+v", len(free), free)
	}
	if !free[0].Start.Equal(mustTime(t, "2026-03-02T09:00:00Z")) ||
		!free[0].End.Equal(mustTime(t, "2026-03-02T11:00:00Z")) {
		t.Errorf("merged window = %v – %v, want 09:00 – 11:00", free[0].Start, free[0].End)
	}
}

func TestFreeWindowsSkipsMalformedSlots(t *testing.T) {
	template := []models.WorkingHour{
		slot(models.Monday, "nine", "ten", true),
		slot(models.Monday, "10:00", "09:00", true), // end before start
		slot(models.Monday, "11:00", "12:00", true),
	}

	free := FreeWindows(template, nil, monday, time.UTC)
	if len(free) != 1 {
		t.Fatalf("got %d free windows, want 1", len(free))
	}
}

func TestFreeWindowsCancelledBookingsDoNotBlock(t *testing.T) {
	// The resolver only receives non-cancelled appointments; this guards the
	// pure core against regressions if a caller passes one anyway.
	template := []models.WorkingHour{
		slot(models.Monday, "09:00", "09:30", true),
	}
	cancelled := booked(t, "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z")
	cancelled.Status = models.StatusCancelled

	free := FreeWindows(template, []models.Appointment{cancelled}, monday, time.UTC)
	// The pure core treats every passed appointment as blocking; filtering by
	// status is the query's job.
	if len(free) != 0 {
		t.Fatalf("got %d free windows, want 0", len(free))
	}
}

func TestOverlapsAny(t *testing.T) {
	appointments := []models.Appointment{
		booked(t, "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z"),
		booked(t, "2026-03-02T11:00:00Z", "2026-03-02T11:30:00Z"),
	}

	if !OverlapsAny(appointments, mustTime(t, "2026-03-02T09:15:00Z"), mustTime(t, "2026-03-02T09:45:00Z")) {
		t.Error("expected overlap with 09:00–09:30 booking")
	}
	if OverlapsAny(appointments, mustTime(t, "2026-03-02T09:30:00Z"), mustTime(t, "2026-03-02T10:00:00Z")) {
		t.Error("touching boundary must not count as overlap")
	}
}
