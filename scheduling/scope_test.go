package scheduling

import (
	"testing"

	"github.com/clinicore/clinic-backend/models"
)

func TestScopeFilterMapping(t *testing.T) {
	tests := []struct {
		name       string
		actor      Actor
		wantColumn string
		wantIDs    []uint
		wantOpen   bool
	}{
		{"patient", Actor{Role: models.RolePatient, ProfileID: 7}, "patient_id", []uint{7}, false},
		{"doctor", Actor{Role: models.RoleDoctor, ProfileID: 3}, "doctor_id", []uint{3}, false},
		{"nurse", Actor{Role: models.RoleNurse, ProfileID: 9}, "nurse_id", []uint{9}, false},
		{"secretary", Actor{Role: models.RoleSecretary, ProfileID: 2, ManagedDoctorIDs: []uint{3, 4}}, "doctor_id", []uint{3, 4}, false},
		{"admin", Actor{Role: models.RoleAdmin}, "", nil, true},
		{"unknown role", Actor{Role: "intruder", ProfileID: 1}, "patient_id", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := ScopeFilter(tt.actor)
			if scope.Unrestricted != tt.wantOpen {
				t.Errorf("Unrestricted = %v, want %v", scope.Unrestricted, tt.wantOpen)
			}
			if scope.Column != tt.wantColumn {
				t.Errorf("Column = %q, want %q", scope.Column, tt.wantColumn)
			}
			if len(scope.IDs) != len(tt.wantIDs) {
				t.Fatalf("IDs = %v, want %v", scope.IDs, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if scope.IDs[i] != tt.wantIDs[i] {
					t.Errorf("IDs = %v, want %v", scope.IDs, tt.wantIDs)
				}
			}
		})
	}
}

func TestScopeAllows(t *testing.T) {
	nurseID := uint(9)
	appt := &models.Appointment{DoctorID: 3, PatientID: 7, NurseID: &nurseID}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owning patient", Actor{Role: models.RolePatient, ProfileID: 7}, true},
		{"other patient", Actor{Role: models.RolePatient, ProfileID: 8}, false},
		{"owning doctor", Actor{Role: models.RoleDoctor, ProfileID: 3}, true},
		{"other doctor", Actor{Role: models.RoleDoctor, ProfileID: 4}, false},
		{"assigned nurse", Actor{Role: models.RoleNurse, ProfileID: 9}, true},
		{"managing secretary", Actor{Role: models.RoleSecretary, ManagedDoctorIDs: []uint{3}}, true},
		{"non-managing secretary", Actor{Role: models.RoleSecretary, ManagedDoctorIDs: []uint{5}}, false},
		{"secretary with no doctors", Actor{Role: models.RoleSecretary}, false},
		{"admin", Actor{Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScopeFilter(tt.actor).Allows(appt); got != tt.want {
				t.Errorf("Allows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScopeAllowsNoNurseAssigned(t *testing.T) {
	appt := &models.Appointment{DoctorID: 3, PatientID: 7}
	actor := Actor{Role: models.RoleNurse, ProfileID: 9}
	if ScopeFilter(actor).Allows(appt) {
		t.Error("nurse must not see appointments without a nurse assignment")
	}
}
