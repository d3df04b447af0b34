package scheduling_test

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-backend/models"
	"github.com/clinicore/clinic-backend/scheduling"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Doctor{}, &models.Patient{},
		&models.WorkingHour{}, &models.Appointment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8]),
		Password:  "not-a-real-hash",
		IsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func newDoctor(t *testing.T, db *gorm.DB) models.Doctor {
	t.Helper()
	doctor := models.Doctor{UserID: newUser(t, db).ID, Specialty: "general"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return doctor
}

func newPatient(t *testing.T, db *gorm.DB) models.Patient {
	t.Helper()
	patient := models.Patient{UserID: newUser(t, db).ID}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return patient
}

func patientActor(p models.Patient) scheduling.Actor {
	return scheduling.Actor{UserID: p.UserID, Role: models.RolePatient, ProfileID: p.ID}
}

func doctorActor(d models.Doctor) scheduling.Actor {
	return scheduling.Actor{UserID: d.UserID, Role: models.RoleDoctor, ProfileID: d.ID}
}

// futureSlot returns a far-future window so reruns against the same database
// never collide with leftover rows. Each test uses its own doctor anyway.
func futureSlot(hoursFromNow int) (time.Time, time.Time) {
	start := time.Now().Add(time.Duration(hoursFromNow) * time.Hour).Truncate(time.Minute)
	return start, start.Add(30 * time.Minute)
}

func errKind(t *testing.T, err error) scheduling.Kind {
	t.Helper()
	var schedErr *scheduling.Error
	if !errors.As(err, &schedErr) {
		t.Fatalf("expected *scheduling.Error, got %T: %v", err, err)
	}
	return schedErr.Kind
}

func TestCreateAppointmentConflict(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	actor := patientActor(patient)

	start, end := futureSlot(100)
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end, Reason: "checkup",
	}, actor); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Exact same slot.
	_, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, patientActor(newPatient(t, db)))
	if err == nil {
		t.Fatal("expected conflict for same slot")
	}
	if kind := errKind(t, err); kind != scheduling.KindConflict {
		t.Errorf("kind = %v, want KindConflict", kind)
	}

	// Partial overlap.
	_, err = scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start.Add(15 * time.Minute), EndTime: end.Add(15 * time.Minute),
	}, patientActor(newPatient(t, db)))
	if err == nil {
		t.Fatal("expected conflict for partial overlap")
	}

	// Touching slot, end is exclusive.
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: end, EndTime: end.Add(30 * time.Minute),
	}, patientActor(newPatient(t, db))); err != nil {
		t.Fatalf("adjacent slot must not conflict: %v", err)
	}
}

func TestDifferentDoctorsNoConflict(t *testing.T) {
	db := setupDB(t)
	patient := newPatient(t, db)
	actor := patientActor(patient)

	start, end := futureSlot(200)
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: newDoctor(t, db).ID, StartTime: start, EndTime: end,
	}, actor); err != nil {
		t.Fatalf("first doctor: %v", err)
	}
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: newDoctor(t, db).ID, StartTime: start, EndTime: end,
	}, actor); err != nil {
		t.Fatalf("second doctor, same slot: %v", err)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	start, end := futureSlot(300)

	tests := []struct {
		name  string
		in    scheduling.CreateInput
		actor scheduling.Actor
		want  scheduling.Kind
	}{
		{"end before start", scheduling.CreateInput{DoctorID: doctor.ID, StartTime: end, EndTime: start},
			patientActor(patient), scheduling.KindValidation},
		{"unknown doctor", scheduling.CreateInput{DoctorID: 999999999, StartTime: start, EndTime: end},
			patientActor(patient), scheduling.KindNotFound},
		{"secretary for unmanaged doctor", scheduling.CreateInput{DoctorID: doctor.ID, PatientID: patient.ID, StartTime: start, EndTime: end},
			scheduling.Actor{Role: models.RoleSecretary, ProfileID: 1}, scheduling.KindForbidden},
		{"admin without patient", scheduling.CreateInput{DoctorID: doctor.ID, StartTime: start, EndTime: end},
			scheduling.Actor{Role: models.RoleAdmin}, scheduling.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduling.CreateAppointment(db, tt.in, tt.actor)
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := errKind(t, err); kind != tt.want {
				t.Errorf("kind = %v, want %v", kind, tt.want)
			}
		})
	}
}

func TestCancelFreesSlot(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	actor := patientActor(patient)

	start, end := futureSlot(400)
	appt, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, actor)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	cancelled, err := scheduling.CancelAppointment(db, appt.ID, actor)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	// Cancelled rows no longer block the slot.
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, actor); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}

	// Cancelling twice is an invalid transition, not a no-op.
	_, err = scheduling.CancelAppointment(db, appt.ID, actor)
	if err == nil {
		t.Fatal("expected error cancelling twice")
	}
	if kind := errKind(t, err); kind != scheduling.KindValidation {
		t.Errorf("kind = %v, want KindValidation", kind)
	}
}

func TestCancelOtherPatientsAppointment(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	owner := newPatient(t, db)

	start, end := futureSlot(500)
	appt, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, patientActor(owner))
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err = scheduling.CancelAppointment(db, appt.ID, patientActor(newPatient(t, db)))
	if err == nil {
		t.Fatal("expected forbidden for other patient")
	}
	if kind := errKind(t, err); kind != scheduling.KindForbidden {
		t.Errorf("kind = %v, want KindForbidden", kind)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)

	start, end := futureSlot(600)
	appt, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, patientActor(patient))
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Another doctor cannot touch it.
	_, err = scheduling.UpdateStatus(db, appt.ID, models.StatusInProgress, doctorActor(newDoctor(t, db)))
	if err == nil {
		t.Fatal("expected forbidden for other doctor")
	}
	if kind := errKind(t, err); kind != scheduling.KindForbidden {
		t.Errorf("kind = %v, want KindForbidden", kind)
	}

	// Skipping in-progress is not allowed.
	_, err = scheduling.UpdateStatus(db, appt.ID, models.StatusCompleted, doctorActor(doctor))
	if err == nil {
		t.Fatal("expected invalid transition scheduled -> completed")
	}

	if _, err := scheduling.UpdateStatus(db, appt.ID, models.StatusInProgress, doctorActor(doctor)); err != nil {
		t.Fatalf("start: %v", err)
	}
	updated, err := scheduling.UpdateStatus(db, appt.ID, models.StatusCompleted, doctorActor(doctor))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
}

func TestUpdateAppointmentConflictRollsBack(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	actor := patientActor(patient)
	admin := scheduling.Actor{Role: models.RoleAdmin}

	start1, end1 := futureSlot(700)
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start1, EndTime: end1,
	}, actor); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	start2, end2 := futureSlot(702)
	second, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start2, EndTime: end2,
	}, actor)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// Move the second into the first's slot.
	_, err = scheduling.UpdateAppointment(db, second.ID, scheduling.UpdateInput{
		StartTime: &start1, EndTime: &end1,
	}, admin)
	if err == nil {
		t.Fatal("expected conflict on reschedule")
	}
	if kind := errKind(t, err); kind != scheduling.KindConflict {
		t.Errorf("kind = %v, want KindConflict", kind)
	}

	// The stored record is untouched.
	var stored models.Appointment
	if err := db.First(&stored, second.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.StartTime.Equal(start2) || !stored.EndTime.Equal(end2) {
		t.Errorf("record changed after failed reschedule: %v – %v", stored.StartTime, stored.EndTime)
	}

	// A clean reschedule succeeds and does not conflict with itself.
	start3 := start2.Add(time.Hour)
	end3 := end2.Add(time.Hour)
	moved, err := scheduling.UpdateAppointment(db, second.ID, scheduling.UpdateInput{
		StartTime: &start3, EndTime: &end3,
	}, admin)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !moved.StartTime.Equal(start3) {
		t.Errorf("start = %v, want %v", moved.StartTime, start3)
	}
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	start, end := futureSlot(800)

	const n = 8
	patients := make([]models.Patient, n)
	for i := range patients {
		patients[i] = newPatient(t, db)
	}

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
				DoctorID: doctor.ID, StartTime: start, EndTime: end,
			}, patientActor(patients[i]))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var schedErr *scheduling.Error
		if errors.As(err, &schedErr) && schedErr.Kind == scheduling.KindConflict {
			conflicts++
			continue
		}
		t.Errorf("unexpected error: %v", err)
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
}

func TestConcurrentCancelSingleWinner(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	actor := patientActor(patient)

	start, end := futureSlot(850)
	appt, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start, EndTime: end,
	}, actor)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	const n = 4
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := scheduling.CancelAppointment(db, appt.ID, actor)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, rejected := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var schedErr *scheduling.Error
		if errors.As(err, &schedErr) && schedErr.Kind == scheduling.KindValidation {
			rejected++
			continue
		}
		t.Errorf("unexpected error: %v", err)
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 cancel to succeed, got %d", successes)
	}
	if rejected != n-1 {
		t.Errorf("expected %d rejected cancels, got %d", n-1, rejected)
	}
}

func TestConcurrentRescheduleSingleWinner(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)
	actor := patientActor(patient)
	admin := scheduling.Actor{Role: models.RoleAdmin}

	// Two appointments at distinct slots, both racing into the same free
	// third slot.
	start1, end1 := futureSlot(860)
	first, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start1, EndTime: end1,
	}, actor)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	start2, end2 := futureSlot(862)
	second, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: start2, EndTime: end2,
	}, actor)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	target, targetEnd := futureSlot(864)
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, id := range []uint{first.ID, second.ID} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := scheduling.UpdateAppointment(db, id, scheduling.UpdateInput{
				StartTime: &target, EndTime: &targetEnd,
			}, admin)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var schedErr *scheduling.Error
		if errors.As(err, &schedErr) && schedErr.Kind == scheduling.KindConflict {
			conflicts++
			continue
		}
		t.Errorf("unexpected error: %v", err)
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("expected 1 success and 1 conflict, got %d and %d", successes, conflicts)
	}
}

func TestResolveAvailability(t *testing.T) {
	db := setupDB(t)
	doctor := newDoctor(t, db)
	patient := newPatient(t, db)

	// A date next week, template defined for exactly that weekday.
	day := time.Now().UTC().AddDate(0, 0, 7)
	date := day.Format("2006-01-02")
	weekday := models.DayOfWeek(day.Weekday())

	for _, slot := range [][2]string{{"09:00", "09:30"}, {"14:00", "14:30"}} {
		if err := db.Create(&models.WorkingHour{
			DoctorID: doctor.ID, DayOfWeek: weekday,
			StartTime: slot[0], EndTime: slot[1], IsAvailable: true,
		}).Error; err != nil {
			t.Fatalf("create working hour: %v", err)
		}
	}

	morning, _ := scheduling.CombineDateTime(date, "09:00", time.UTC)
	if _, err := scheduling.CreateAppointment(db, scheduling.CreateInput{
		DoctorID: doctor.ID, StartTime: morning, EndTime: morning.Add(30 * time.Minute),
	}, patientActor(patient)); err != nil {
		t.Fatalf("book morning slot: %v", err)
	}

	result, err := scheduling.ResolveAvailability(db, doctor.ID, date, time.UTC)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !result.Available {
		t.Fatal("expected doctor to be available")
	}
	if len(result.Slots) != 1 {
		t.Fatalf("got %d free slots, want 1: %+v", len(result.Slots), result.Slots)
	}
	afternoon, _ := scheduling.CombineDateTime(date, "14:00", time.UTC)
	if !result.Slots[0].Start.Equal(afternoon) {
		t.Errorf("free slot starts %v, want %v", result.Slots[0].Start, afternoon)
	}

	// A day with no template resolves to "not available", not an error.
	empty, err := scheduling.ResolveAvailability(db, doctor.ID, day.AddDate(0, 0, 1).Format("2006-01-02"), time.UTC)
	if err != nil {
		t.Fatalf("resolve empty day: %v", err)
	}
	if empty.Available || len(empty.Slots) != 0 {
		t.Errorf("expected no availability, got %+v", empty)
	}

	// Malformed date behaves the same.
	malformed, err := scheduling.ResolveAvailability(db, doctor.ID, "not-a-date", time.UTC)
	if err != nil {
		t.Fatalf("resolve malformed date: %v", err)
	}
	if malformed.Available {
		t.Error("malformed date must resolve to not available")
	}

	// Unknown doctor is a not-found error.
	_, err = scheduling.ResolveAvailability(db, 999999999, date, time.UTC)
	if err == nil {
		t.Fatal("expected not found for unknown doctor")
	}
	if kind := errKind(t, err); kind != scheduling.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", kind)
	}
}
