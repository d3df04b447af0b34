package utils

import "testing"

func TestSenderName(t *testing.T) {
	t.Setenv("CLINIC_NAME", "")
	if got := senderName(); got != "Clinic Appointments" {
		t.Errorf("default sender = %q, want %q", got, "Clinic Appointments")
	}

	t.Setenv("CLINIC_NAME", "Northside Family Clinic")
	if got := senderName(); got != "Northside Family Clinic" {
		t.Errorf("sender = %q, want %q", got, "Northside Family Clinic")
	}
}
