package scheduling

import (
	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/models"
)

// Scope is the query restriction derived from an actor's role. The same
// scope gates reads (Apply) and writes (Allows) so an actor can never mutate
// an appointment it could not list.
type Scope struct {
	Unrestricted bool
	Column       string
	IDs          []uint
}

// ScopeFilter maps the actor to its appointment scope. Pure, no I/O.
func ScopeFilter(actor Actor) Scope {
	switch actor.Role {
	case models.RolePatient:
		return Scope{Column: "patient_id", IDs: []uint{actor.ProfileID}}
	case models.RoleDoctor:
		return Scope{Column: "doctor_id", IDs: []uint{actor.ProfileID}}
	case models.RoleNurse:
		return Scope{Column: "nurse_id", IDs: []uint{actor.ProfileID}}
	case models.RoleSecretary:
		return Scope{Column: "doctor_id", IDs: actor.ManagedDoctorIDs}
	case models.RoleAdmin:
		return Scope{Unrestricted: true}
	}
	// Unknown roles see nothing.
	return Scope{Column: "patient_id"}
}

// Apply attaches the scope's WHERE clause to an appointment query.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.Unrestricted {
		return db
	}
	if len(s.IDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(s.Column+" IN ?", s.IDs)
}

// Allows reports whether the appointment falls inside the scope.
func (s Scope) Allows(a *models.Appointment) bool {
	if s.Unrestricted {
		return true
	}
	var owner uint
	switch s.Column {
	case "patient_id":
		owner = a.PatientID
	case "doctor_id":
		owner = a.DoctorID
	case "nurse_id":
		if a.NurseID == nil {
			return false
		}
		owner = *a.NurseID
	}
	for _, id := range s.IDs {
		if id == owner {
			return true
		}
	}
	return false
}
