package schedules

import (
	"context"
	"testing"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error) {
	args := m.Called(ctx, doctorID)
	schedules, _ := args.Get(0).([]models.WeeklySchedule)
	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*models.WeeklySchedule, error) {
	args := m.Called(ctx, scheduleID)
	schedule, _ := args.Get(0).(*models.WeeklySchedule)
	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) Upsert(ctx context.Context, schedule *models.WeeklySchedule) (*models.WeeklySchedule, error) {
	args := m.Called(ctx, schedule)
	saved, _ := args.Get(0).(*models.WeeklySchedule)
	return saved, args.Error(1)
}

func (m *MockScheduleRepository) ToggleActive(ctx context.Context, scheduleID, doctorID string) (*models.WeeklySchedule, error) {
	args := m.Called(ctx, scheduleID, doctorID)
	saved, _ := args.Get(0).(*models.WeeklySchedule)
	return saved, args.Error(1)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, scheduleID, doctorID string) error {
	args := m.Called(ctx, scheduleID, doctorID)
	return args.Error(0)
}

func (m *MockScheduleRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) ClaimSlot(ctx context.Context, doctorID, slotDate string, minutes int) (bool, error) {
	args := m.Called(ctx, doctorID, slotDate, minutes)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorRepository) ReleaseSlot(ctx context.Context, doctorID, slotDate string, minutes int) error {
	args := m.Called(ctx, doctorID, slotDate, minutes)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}

const (
	testDoctorID   = "64b7f0c2a1b2c3d4e5f60001"
	testScheduleID = "64b7f0c2a1b2c3d4e5f6a001"
	cacheKey       = "schedules:doctor:" + testDoctorID
)

func newTestUsecase(scheduleRepo *MockScheduleRepository, doctorRepo *MockDoctorRepository, redisRepo *MockRedisRepository) *scheduleUsecase {
	internalConfig := &config.InternalConfig{
		Scheduling: config.Scheduling{ScheduleCacheTTLInSeconds: 60},
	}
	uc := NewScheduleUsecase(scheduleRepo, doctorRepo, redisRepo, internalConfig, zap.NewNop()).(*scheduleUsecase)
	return uc
}

func TestScheduleUsecase_UpsertSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Window Is Saved And Cache Invalidated", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		scheduleRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.WeeklySchedule) bool {
			return s.DoctorID == testDoctorID && s.DayOfWeek == "Monday" && s.SlotDuration == 30
		})).Return(&models.WeeklySchedule{
			ID: testScheduleID, DoctorID: testDoctorID, DayOfWeek: "Monday",
			StartTime: "10:00", EndTime: "12:00", SlotDuration: 30, IsActive: true,
		}, nil)
		redisRepo.On("Delete", mock.Anything, cacheKey).Return(nil)

		saved, err := uc.UpsertSchedule(ctx, testDoctorID, &requests.UpsertSchedule{
			DayOfWeek: "monday", StartTime: "10:00", EndTime: "12:00", SlotDuration: 30,
		})

		require.NoError(t, err)
		assert.Equal(t, testScheduleID, saved.ID)
		assert.True(t, saved.IsActive)
		scheduleRepo.AssertExpectations(t)
		redisRepo.AssertExpectations(t)
	})

	t.Run("Start After End Is Rejected", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), new(MockRedisRepository))

		_, err := uc.UpsertSchedule(ctx, testDoctorID, &requests.UpsertSchedule{
			DayOfWeek: "Monday", StartTime: "12:00", EndTime: "10:00", SlotDuration: 30,
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCode(err))
		scheduleRepo.AssertNotCalled(t, "Upsert")
	})
}

func TestScheduleUsecase_ToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	owned := &models.WeeklySchedule{ID: testScheduleID, DoctorID: testDoctorID, DayOfWeek: "Monday", IsActive: true}

	t.Run("Toggle Flips Active Flag", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		scheduleRepo.On("FindByID", mock.Anything, testScheduleID).Return(owned, nil)
		scheduleRepo.On("ToggleActive", mock.Anything, testScheduleID, testDoctorID).
			Return(&models.WeeklySchedule{ID: testScheduleID, DoctorID: testDoctorID, DayOfWeek: "Monday", IsActive: false}, nil)
		redisRepo.On("Delete", mock.Anything, cacheKey).Return(nil)

		saved, err := uc.ToggleScheduleActive(ctx, testScheduleID, testDoctorID)

		require.NoError(t, err)
		assert.False(t, saved.IsActive)
		redisRepo.AssertExpectations(t)
	})

	t.Run("Other Doctor Cannot Toggle", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), new(MockRedisRepository))

		scheduleRepo.On("FindByID", mock.Anything, testScheduleID).Return(owned, nil)

		_, err := uc.ToggleScheduleActive(ctx, testScheduleID, "someone-else")

		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeForbidden))
		scheduleRepo.AssertNotCalled(t, "ToggleActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete Missing Schedule", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), new(MockRedisRepository))

		scheduleRepo.On("FindByID", mock.Anything, testScheduleID).Return(nil, nil)

		err := uc.DeleteSchedule(ctx, testScheduleID, testDoctorID)

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCode(err))
	})

	t.Run("Delete Owned Schedule", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		scheduleRepo.On("FindByID", mock.Anything, testScheduleID).Return(owned, nil)
		scheduleRepo.On("Delete", mock.Anything, testScheduleID, testDoctorID).Return(nil)
		redisRepo.On("Delete", mock.Anything, cacheKey).Return(nil)

		require.NoError(t, uc.DeleteSchedule(ctx, testScheduleID, testDoctorID))
		scheduleRepo.AssertExpectations(t)
	})
}

func TestScheduleUsecase_FindDoctorSchedules(t *testing.T) {
	ctx := context.Background()
	stored := []models.WeeklySchedule{
		{ID: testScheduleID, DoctorID: testDoctorID, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "12:00", SlotDuration: 30, IsActive: true},
	}

	t.Run("Cache Hit Skips Mongo", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		raw, _ := json.Marshal(stored)
		redisRepo.On("Get", mock.Anything, cacheKey).Return(string(raw), nil)

		schedules, err := uc.FindDoctorSchedules(ctx, testDoctorID)

		require.NoError(t, err)
		assert.Equal(t, stored[0].StartTime, schedules[0].StartTime)
		scheduleRepo.AssertNotCalled(t, "FindByDoctorID", mock.Anything, mock.Anything)
	})

	t.Run("Cache Miss Reads Mongo And Fills Cache", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		redisRepo.On("Get", mock.Anything, cacheKey).Return("", nil)
		scheduleRepo.On("FindByDoctorID", mock.Anything, testDoctorID).Return(stored, nil)
		redisRepo.On("Set", mock.Anything, cacheKey, stored, time.Minute).Return(nil)

		schedules, err := uc.FindDoctorSchedules(ctx, testDoctorID)

		require.NoError(t, err)
		assert.Equal(t, stored, schedules)
		redisRepo.AssertExpectations(t)
	})

	t.Run("Cache Error Falls Back To Mongo", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

		redisRepo.On("Get", mock.Anything, cacheKey).Return("", exceptions.ErrRedisGetNoData(assert.AnError, cacheKey))
		scheduleRepo.On("FindByDoctorID", mock.Anything, testDoctorID).Return(stored, nil)
		redisRepo.On("Set", mock.Anything, cacheKey, stored, time.Minute).Return(assert.AnError)

		schedules, err := uc.FindDoctorSchedules(ctx, testDoctorID)

		require.NoError(t, err)
		assert.Len(t, schedules, 1)
	})
}

func TestScheduleUsecase_GetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("WIB", 7*60*60)

	t.Run("Booked Slot Excluded For Monday", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		doctorRepo := new(MockDoctorRepository)
		redisRepo := new(MockRedisRepository)
		uc := newTestUsecase(scheduleRepo, doctorRepo, redisRepo)
		uc.now = func() time.Time { return time.Date(2025, 7, 7, 9, 0, 0, 0, loc) }

		doctorRepo.On("FindByID", mock.Anything, testDoctorID).Return(&models.Doctor{
			ID: testDoctorID, Available: true, SlotsBooked: models.BookedIndex{"2025-07-07": {630}},
		}, nil)
		redisRepo.On("Get", mock.Anything, cacheKey).Return("", nil)
		scheduleRepo.On("FindByDoctorID", mock.Anything, testDoctorID).Return([]models.WeeklySchedule{
			{DoctorID: testDoctorID, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "12:00", SlotDuration: 30, IsActive: true},
		}, nil)
		redisRepo.On("Set", mock.Anything, cacheKey, mock.Anything, time.Minute).Return(nil)

		days, err := uc.GetAvailableSlots(ctx, testDoctorID)

		require.NoError(t, err)
		require.Len(t, days, constvars.SlotGenerationDays)
		assert.Equal(t, "7_7_2025", days[0].DateKey)
		var labels []string
		for _, s := range days[0].Slots {
			labels = append(labels, s.Time)
		}
		assert.Equal(t, []string{"10:00 AM", "11:00 AM", "11:30 AM"}, labels)
	})

	t.Run("Unavailable Doctor Offers No Slots", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		doctorRepo := new(MockDoctorRepository)
		uc := newTestUsecase(scheduleRepo, doctorRepo, new(MockRedisRepository))

		doctorRepo.On("FindByID", mock.Anything, testDoctorID).Return(&models.Doctor{ID: testDoctorID}, nil)

		days, err := uc.GetAvailableSlots(ctx, testDoctorID)

		require.NoError(t, err)
		assert.Empty(t, days)
		scheduleRepo.AssertNotCalled(t, "FindByDoctorID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Doctor", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		uc := newTestUsecase(new(MockScheduleRepository), doctorRepo, new(MockRedisRepository))

		doctorRepo.On("FindByID", mock.Anything, testDoctorID).Return(nil, nil)

		_, err := uc.GetAvailableSlots(ctx, testDoctorID)

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCode(err))
	})
}

func TestScheduleUsecase_GetSchedulesSortedMondayFirst(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	redisRepo := new(MockRedisRepository)
	uc := newTestUsecase(scheduleRepo, new(MockDoctorRepository), redisRepo)

	redisRepo.On("Get", mock.Anything, cacheKey).Return("", nil)
	scheduleRepo.On("FindByDoctorID", mock.Anything, testDoctorID).Return([]models.WeeklySchedule{
		{DayOfWeek: "Sunday"}, {DayOfWeek: "Wednesday"}, {DayOfWeek: "Monday"},
	}, nil)
	redisRepo.On("Set", mock.Anything, cacheKey, mock.Anything, time.Minute).Return(nil)

	schedules, err := uc.GetSchedulesByDoctorID(context.Background(), testDoctorID)

	require.NoError(t, err)
	require.Len(t, schedules, 3)
	assert.Equal(t, "Monday", schedules[0].DayOfWeek)
	assert.Equal(t, "Wednesday", schedules[1].DayOfWeek)
	assert.Equal(t, "Sunday", schedules[2].DayOfWeek)
}
