package scheduling

import (
	"errors"
	"testing"

	"github.com/clinicore/clinic-backend/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.AppointmentStatus
		want     bool
	}{
		{models.StatusScheduled, models.StatusInProgress, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusNoShow, true},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusNoShow, true},

		{models.StatusScheduled, models.StatusCompleted, false},
		{models.StatusInProgress, models.StatusCancelled, false},
		{models.StatusInProgress, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusInProgress, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusScheduled, false},
		{models.StatusCancelled, models.StatusCancelled, false},
		{models.StatusNoShow, models.StatusScheduled, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidateTransitionReturnsValidationError(t *testing.T) {
	err := ValidateTransition(models.StatusCancelled, models.StatusCancelled)
	if err == nil {
		t.Fatal("expected error for cancelled -> cancelled")
	}
	var schedErr *Error
	if !errors.As(err, &schedErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if schedErr.Kind != KindValidation {
		t.Errorf("kind = %v, want KindValidation", schedErr.Kind)
	}

	if err := ValidateTransition(models.StatusScheduled, models.StatusInProgress); err != nil {
		t.Errorf("legal transition returned error: %v", err)
	}
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), 404},
		{Conflict("x"), 409},
		{Invalid("x"), 400},
		{Forbidden("x"), 403},
		{Unauthorized("x"), 401},
	}
	for _, tt := range tests {
		var schedErr *Error
		if !errors.As(tt.err, &schedErr) {
			t.Fatalf("expected *Error, got %T", tt.err)
		}
		if got := schedErr.StatusCode(); got != tt.want {
			t.Errorf("StatusCode(%s) = %d, want %d", schedErr.Message, got, tt.want)
		}
	}
}
