package scheduling

// Actor is the verified identity a request acts as. It is resolved once by
// the auth middleware from the token claims; the engine never trusts raw
// identifiers from a request body for "who is asking".
type Actor struct {
	UserID    uint
	Role      string
	ProfileID uint
	// ManagedDoctorIDs is populated for secretaries only.
	ManagedDoctorIDs []uint
}

// Manages reports whether the actor's managed-doctor set contains doctorID.
func (a Actor) Manages(doctorID uint) bool {
	for _, id := range a.ManagedDoctorIDs {
		if id == doctorID {
			return true
		}
	}
	return false
}
