package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/VitalCareServices/clinic-scheduler/internal/domain/appointment"
	"github.com/VitalCareServices/clinic-scheduler/internal/models"
)

// fakeRepo is an in-memory domain.Repository. WithTransaction snapshots
// the stores and restores them when fn fails, mirroring a rollback.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	patients     map[uint]models.Patient // keyed by user id
	appointments map[uint]models.Appointment
	records      []models.MedicalRecord
	nextID       uint

	countCalls        int
	failUpdate        bool
	failPatientLookup error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients:     make(map[uint]models.Patient),
		appointments: make(map[uint]models.Appointment),
	}
}

func (r *fakeRepo) addPatient(userID uint) uint {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	uid := userID
	r.patients[userID] = models.Patient{
		ID:        r.nextID,
		UserID:    &uid,
		FirstName: "Test",
	}
	return r.nextID
}

func (r *fakeRepo) addAppointment(patientID, doctorID uint, date time.Time, status string) uint {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.appointments[r.nextID] = models.Appointment{
		ID:        r.nextID,
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Status:    status,
	}
	return r.nextID
}

func (r *fakeRepo) FindPatientByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failPatientLookup != nil {
		return nil, r.failPatientLookup
	}

	p, ok := r.patients[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) CountSlotCollisions(ctx context.Context, doctorID uint, date time.Time, excludeID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.countCalls++

	var count int64
	for _, ap := range r.appointments {
		if ap.ID == excludeID {
			continue
		}
		if ap.DoctorID == doctorID && ap.Date.Equal(date) && ap.Status != "CANCELLED" {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (r *fakeRepo) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.GetAppointmentByID(ctx, id)
}

func (r *fakeRepo) ListAppointmentsByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	return r.list(func(ap models.Appointment) bool { return ap.PatientID == patientID })
}

func (r *fakeRepo) ListAppointmentsByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	return r.list(func(ap models.Appointment) bool { return ap.DoctorID == doctorID })
}

func (r *fakeRepo) ListAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return r.list(func(models.Appointment) bool { return true })
}

func (r *fakeRepo) list(keep func(models.Appointment) bool) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdate {
		return errors.New("forced update failure")
	}
	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) CreateMedicalRecord(ctx context.Context, rec *models.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec.ID = r.nextID
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeRepo) WithTransaction(ctx context.Context, fn func(domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshotAps := make(map[uint]models.Appointment, len(r.appointments))
	for id, ap := range r.appointments {
		snapshotAps[id] = ap
	}
	snapshotRecs := append([]models.MedicalRecord(nil), r.records...)
	snapshotNext := r.nextID
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.appointments = snapshotAps
		r.records = snapshotRecs
		r.nextID = snapshotNext
		r.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
