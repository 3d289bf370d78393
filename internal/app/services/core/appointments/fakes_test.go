package appointments

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const (
	testDoctorID = "64b7f0c2a1b2c3d4e5f60001"
	testUserID   = "64b7f0c2a1b2c3d4e5f6a001"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

// Monday 2025-07-07 09:00 WIB, one hour before the test schedule opens.
var mondayMorning = time.Date(2025, 7, 7, 9, 0, 0, 0, jakarta)

type memoryAppointments struct {
	mu         sync.Mutex
	seq        int
	byID       map[string]*models.Appointment
	failInsert error
}

func newMemoryAppointments() *memoryAppointments {
	return &memoryAppointments{byID: map[string]*models.Appointment{}}
}

func (m *memoryAppointments) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert != nil {
		return nil, m.failInsert
	}
	for _, existing := range m.byID {
		if !existing.IsActive() {
			continue
		}
		if existing.UserID == appointment.UserID {
			return nil, exceptions.ErrActiveAppointmentExists(appointment.UserID)
		}
		if existing.DoctorID == appointment.DoctorID && existing.SlotDate == appointment.SlotDate && existing.SlotMinutes == appointment.SlotMinutes {
			return nil, exceptions.ErrSlotAlreadyBooked(appointment.DoctorID, appointment.SlotDate, appointment.SlotMinutes)
		}
	}
	m.seq++
	saved := *appointment
	saved.ID = fmt.Sprintf("%024x", m.seq)
	m.byID[saved.ID] = &saved
	out := saved
	return &out, nil
}

func (m *memoryAppointments) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.byID[appointmentID]
	if !ok {
		return nil, nil
	}
	out := *appointment
	return &out, nil
}

func (m *memoryAppointments) filter(keep func(models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Appointment, 0)
	for _, appointment := range m.byID {
		if keep(*appointment) {
			out = append(out, *appointment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryAppointments) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.UserID == userID }), nil
}

func (m *memoryAppointments) FindActiveByUserID(ctx context.Context, userID string) (*models.Appointment, error) {
	found := m.filter(func(a models.Appointment) bool { return a.UserID == userID && a.IsActive() })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (m *memoryAppointments) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (m *memoryAppointments) FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	found := m.filter(func(a models.Appointment) bool { return a.IsActive() && !a.SlotStart.After(cutoff) })
	sort.Slice(found, func(i, j int) bool { return found[i].SlotStart.Before(found[j].SlotStart) })
	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (m *memoryAppointments) MarkCancelled(ctx context.Context, appointmentID, reason string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.byID[appointmentID]
	if !ok || !appointment.IsActive() {
		return false, nil
	}
	appointment.Cancelled = true
	appointment.CancelReason = reason
	appointment.CancelledAt = &at
	return true, nil
}

func (m *memoryAppointments) MarkCompleted(ctx context.Context, appointmentID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.byID[appointmentID]
	if !ok || !appointment.IsActive() {
		return false, nil
	}
	appointment.IsCompleted = true
	appointment.CompletedAt = &at
	return true, nil
}

func (m *memoryAppointments) EnsureIndexes(ctx context.Context) error {
	return nil
}

// seed stores appointment as is and returns its id.
func (m *memoryAppointments) seed(appointment models.Appointment) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	appointment.ID = fmt.Sprintf("%024x", m.seq)
	m.byID[appointment.ID] = &appointment
	return appointment.ID
}

func (m *memoryAppointments) get(appointmentID string) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.byID[appointmentID]
}

func (m *memoryAppointments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *memoryAppointments) activeCount(userID string) int {
	return len(m.filter(func(a models.Appointment) bool { return a.UserID == userID && a.IsActive() }))
}

type memoryDoctors struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func newMemoryDoctors(doctors ...models.Doctor) *memoryDoctors {
	m := &memoryDoctors{doctors: map[string]*models.Doctor{}}
	for i := range doctors {
		doctor := doctors[i]
		m.doctors[doctor.ID] = &doctor
	}
	return m
}

func (m *memoryDoctors) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor, ok := m.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	out := *doctor
	out.SlotsBooked = models.BookedIndex{}
	for date, minutes := range doctor.SlotsBooked {
		out.SlotsBooked[date] = slices.Clone(minutes)
	}
	return &out, nil
}

func (m *memoryDoctors) ClaimSlot(ctx context.Context, doctorID, slotDate string, minutes int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor, ok := m.doctors[doctorID]
	if !ok {
		return false, nil
	}
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = models.BookedIndex{}
	}
	return doctor.SlotsBooked.Add(slotDate, minutes), nil
}

func (m *memoryDoctors) ReleaseSlot(ctx context.Context, doctorID, slotDate string, minutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doctor, ok := m.doctors[doctorID]; ok {
		doctor.SlotsBooked.Remove(slotDate, minutes)
	}
	return nil
}

func (m *memoryDoctors) booked(doctorID, slotDate string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.doctors[doctorID].SlotsBooked[slotDate])
}

type memoryUsers map[string]models.User

func (m memoryUsers) FindByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := m[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type memoryLocker struct {
	mu    sync.Mutex
	held  map[string]string
	seq   int
	err   error
	calls int
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{held: map[string]string{}}
}

func (l *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return false, "", l.err
	}
	if _, ok := l.held[key]; ok {
		return false, "", nil
	}
	l.seq++
	token := fmt.Sprintf("token-%d", l.seq)
	l.held[key] = token
	return true, token, nil
}

func (l *memoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == lockValue {
		delete(l.held, key)
	}
	return nil
}

func (l *memoryLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] != lockValue {
		return errors.New("lock not owned")
	}
	return nil
}

// staticSchedules serves fixed schedules to the booking checker.
type staticSchedules struct {
	schedules []models.WeeklySchedule
}

func (s staticSchedules) GetSchedulesByDoctorID(ctx context.Context, doctorID string) ([]responses.WeeklySchedule, error) {
	return nil, nil
}

func (s staticSchedules) FindDoctorSchedules(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error) {
	return s.schedules, nil
}

func (s staticSchedules) UpsertSchedule(ctx context.Context, doctorID string, request *requests.UpsertSchedule) (*responses.WeeklySchedule, error) {
	return nil, nil
}

func (s staticSchedules) DeleteSchedule(ctx context.Context, scheduleID, doctorID string) error {
	return nil
}

func (s staticSchedules) ToggleScheduleActive(ctx context.Context, scheduleID, doctorID string) (*responses.WeeklySchedule, error) {
	return nil, nil
}

func (s staticSchedules) GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error) {
	return nil, nil
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) PublishAppointmentEvent(ctx context.Context, notification *requests.AppointmentNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationService) events() []string {
	var out []string
	for _, call := range m.Calls {
		out = append(out, call.Arguments.Get(1).(*requests.AppointmentNotification).Event)
	}
	return out
}

func mondaySchedule() []models.WeeklySchedule {
	return []models.WeeklySchedule{
		{DoctorID: testDoctorID, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "12:00", SlotDuration: 30, IsActive: true},
	}
}

func verifiedUser(id, name string) models.User {
	return models.User{ID: id, Name: name, Email: name + "@example.com", IsVerified: true}
}

type fixture struct {
	appointments *memoryAppointments
	doctors      *memoryDoctors
	users        memoryUsers
	locker       *memoryLocker
	notifier     *MockNotificationService
	cfg          *config.InternalConfig
	usecase      *appointmentUsecase
}

func newFixture() *fixture {
	f := &fixture{
		appointments: newMemoryAppointments(),
		doctors: newMemoryDoctors(models.Doctor{
			ID:         testDoctorID,
			Name:       "Dr. Rina",
			Speciality: "Small Animals",
			Fees:       150000,
			Available:  true,
		}),
		users:    memoryUsers{testUserID: verifiedUser(testUserID, "budi")},
		locker:   newMemoryLocker(),
		notifier: new(MockNotificationService),
		cfg: &config.InternalConfig{
			Scheduling: config.Scheduling{
				BookingLockTTLInSeconds:       10,
				BookingLockRetryCount:         200,
				BookingLockRetryDelayInMillis: 1,
			},
		},
	}
	f.notifier.On("PublishAppointmentEvent", mock.Anything, mock.Anything).Return(nil)

	uc := NewAppointmentUsecase(
		f.appointments,
		f.doctors,
		f.users,
		staticSchedules{schedules: mondaySchedule()},
		f.notifier,
		f.locker,
		f.cfg,
		zap.NewNop(),
	).(*appointmentUsecase)
	uc.now = func() time.Time { return mondayMorning }
	f.usecase = uc
	return f
}

func (f *fixture) setNow(now time.Time) {
	f.usecase.now = func() time.Time { return now }
}

func bookRequest(slotDate, slotTime string) *requests.BookAppointment {
	return &requests.BookAppointment{DoctorID: testDoctorID, SlotDate: slotDate, SlotTime: slotTime}
}
