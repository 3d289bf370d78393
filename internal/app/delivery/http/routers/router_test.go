package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vetcare-service/internal/app/config"
	"vetcare-service/internal/app/delivery/http/controllers"
	"vetcare-service/internal/app/delivery/http/middlewares"
	"vetcare-service/internal/app/models"
	"vetcare-service/internal/pkg/constvars"
	"vetcare-service/internal/pkg/dto/requests"
	"vetcare-service/internal/pkg/dto/responses"
	"vetcare-service/internal/pkg/exceptions"
	"vetcare-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-jwt-secret"
	testUserID   = "64b7f0c2a1b2c3d4e5f6a001"
	testDoctorID = "64b7f0c2a1b2c3d4e5f60001"
)

type MockScheduleUsecase struct {
	mock.Mock
}

func (m *MockScheduleUsecase) GetSchedulesByDoctorID(ctx context.Context, doctorID string) ([]responses.WeeklySchedule, error) {
	args := m.Called(ctx, doctorID)
	out, _ := args.Get(0).([]responses.WeeklySchedule)
	return out, args.Error(1)
}

func (m *MockScheduleUsecase) FindDoctorSchedules(ctx context.Context, doctorID string) ([]models.WeeklySchedule, error) {
	args := m.Called(ctx, doctorID)
	out, _ := args.Get(0).([]models.WeeklySchedule)
	return out, args.Error(1)
}

func (m *MockScheduleUsecase) UpsertSchedule(ctx context.Context, doctorID string, request *requests.UpsertSchedule) (*responses.WeeklySchedule, error) {
	args := m.Called(ctx, doctorID, request)
	out, _ := args.Get(0).(*responses.WeeklySchedule)
	return out, args.Error(1)
}

func (m *MockScheduleUsecase) DeleteSchedule(ctx context.Context, scheduleID, doctorID string) error {
	args := m.Called(ctx, scheduleID, doctorID)
	return args.Error(0)
}

func (m *MockScheduleUsecase) ToggleScheduleActive(ctx context.Context, scheduleID, doctorID string) (*responses.WeeklySchedule, error) {
	args := m.Called(ctx, scheduleID, doctorID)
	out, _ := args.Get(0).(*responses.WeeklySchedule)
	return out, args.Error(1)
}

func (m *MockScheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID string) ([]responses.DaySlots, error) {
	args := m.Called(ctx, doctorID)
	out, _ := args.Get(0).([]responses.DaySlots)
	return out, args.Error(1)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) BookAppointment(ctx context.Context, userID string, request *requests.BookAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, userID, request)
	out, _ := args.Get(0).(*responses.Appointment)
	return out, args.Error(1)
}

func (m *MockAppointmentUsecase) CancelAppointment(ctx context.Context, appointmentID, actorID string) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID, actorID)
	out, _ := args.Get(0).(*responses.Appointment)
	return out, args.Error(1)
}

func (m *MockAppointmentUsecase) CompleteAppointment(ctx context.Context, appointmentID, doctorID string) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID, doctorID)
	out, _ := args.Get(0).(*responses.Appointment)
	return out, args.Error(1)
}

func (m *MockAppointmentUsecase) AutoExpire(ctx context.Context, appointment *models.Appointment, now time.Time) (bool, error) {
	args := m.Called(ctx, appointment, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentUsecase) ListMyAppointments(ctx context.Context, userID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]responses.Appointment)
	return out, args.Error(1)
}

func (m *MockAppointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, doctorID)
	out, _ := args.Get(0).([]responses.Appointment)
	return out, args.Error(1)
}

func (m *MockAppointmentUsecase) HasActiveAppointment(ctx context.Context, userID string) (*responses.ActiveAppointment, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(*responses.ActiveAppointment)
	return out, args.Error(1)
}

type testServer struct {
	router       *chi.Mux
	schedules    *MockScheduleUsecase
	appointments *MockAppointmentUsecase
}

func newTestServer(bookingPerMinute int) *testServer {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                     "v1",
			EndpointPrefix:              "api",
			AllowedOrigins:              "*",
			MaxRequests:                 1000,
			MaxTimeRequestsPerSeconds:   1,
			RequestBodyLimitInMegabyte:  1,
			BookingMaxRequestsPerMinute: bookingPerMinute,
		},
		JWT: config.AppJWT{Secret: testSecret},
	}

	s := &testServer{
		router:       chi.NewRouter(),
		schedules:    new(MockScheduleUsecase),
		appointments: new(MockAppointmentUsecase),
	}
	SetupRoutes(
		s.router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewScheduleController(logger, s.schedules),
		controllers.NewAppointmentController(logger, s.appointments),
	)
	return s
}

func bearer(t *testing.T, subject, role string) string {
	token, err := utils.GenerateAccessJWT(subject, role, testSecret, time.Hour)
	require.NoError(t, err)
	return constvars.HeaderBearerPrefix + token
}

func (s *testServer) do(method, path, authorization string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(constvars.HeaderAuthorization, authorization)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	var out envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestDoctorRoutes(t *testing.T) {
	t.Run("Slots Are Public", func(t *testing.T) {
		s := newTestServer(10)
		days := []responses.DaySlots{{Date: "2025-07-07", DateKey: "7_7_2025", DayOfWeek: "Monday", Slots: []responses.CandidateSlot{}}}
		s.schedules.On("GetAvailableSlots", mock.Anything, testDoctorID).Return(days, nil)

		rr := s.do(http.MethodGet, "/api/v1/doctors/"+testDoctorID+"/slots", "", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decode(t, rr)
		assert.True(t, body.Success)
		assert.Contains(t, string(body.Data), `"dateKey":"7_7_2025"`)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		s.schedules.AssertExpectations(t)
	})

	t.Run("Schedules Are Public", func(t *testing.T) {
		s := newTestServer(10)
		s.schedules.On("GetSchedulesByDoctorID", mock.Anything, testDoctorID).Return([]responses.WeeklySchedule{}, nil)

		rr := s.do(http.MethodGet, "/api/v1/doctors/"+testDoctorID+"/schedules", "", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Doctor Appointments Need Doctor Role", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("ListDoctorAppointments", mock.Anything, testDoctorID).Return([]responses.Appointment{}, nil)

		rr := s.do(http.MethodGet, "/api/v1/doctors/me/appointments", bearer(t, testUserID, constvars.RoleUser), nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = s.do(http.MethodGet, "/api/v1/doctors/me/appointments", bearer(t, testDoctorID, constvars.RoleDoctor), nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		s.appointments.AssertExpectations(t)
	})
}

func TestScheduleRoutes(t *testing.T) {
	t.Run("Upsert Uses Caller As Doctor", func(t *testing.T) {
		s := newTestServer(10)
		s.schedules.On("UpsertSchedule", mock.Anything, testDoctorID, mock.MatchedBy(func(r *requests.UpsertSchedule) bool {
			return r.DayOfWeek == "Monday" && r.StartTime == "10:00"
		})).Return(&responses.WeeklySchedule{ID: "s1", DayOfWeek: "Monday"}, nil)

		rr := s.do(http.MethodPost, "/api/v1/schedules", bearer(t, testDoctorID, constvars.RoleDoctor), requests.UpsertSchedule{
			DayOfWeek:    "monday",
			StartTime:    "10:00",
			EndTime:      "12:00",
			SlotDuration: 30,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		s.schedules.AssertExpectations(t)
	})

	t.Run("Upsert Rejects Bad Clock", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPost, "/api/v1/schedules", bearer(t, testDoctorID, constvars.RoleDoctor), requests.UpsertSchedule{
			DayOfWeek:    "Monday",
			StartTime:    "10am",
			EndTime:      "12:00",
			SlotDuration: 30,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constvars.ErrCodeValidation, decode(t, rr).Code)
		s.schedules.AssertNotCalled(t, "UpsertSchedule")
	})

	t.Run("Toggle And Delete", func(t *testing.T) {
		s := newTestServer(10)
		s.schedules.On("ToggleScheduleActive", mock.Anything, "s1", testDoctorID).Return(&responses.WeeklySchedule{ID: "s1"}, nil)
		s.schedules.On("DeleteSchedule", mock.Anything, "s1", testDoctorID).Return(exceptions.ErrScheduleNotOwned("s1", testDoctorID))

		rr := s.do(http.MethodPatch, "/api/v1/schedules/s1/toggle", bearer(t, testDoctorID, constvars.RoleDoctor), nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = s.do(http.MethodDelete, "/api/v1/schedules/s1", bearer(t, testDoctorID, constvars.RoleDoctor), nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Users Cannot Manage Schedules", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPatch, "/api/v1/schedules/s1/toggle", bearer(t, testUserID, constvars.RoleUser), nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		s.schedules.AssertNotCalled(t, "ToggleScheduleActive")
	})
}

func TestAppointmentRoutes(t *testing.T) {
	validBooking := requests.BookAppointment{DoctorID: testDoctorID, SlotDate: "2025-07-07", SlotTime: "10:30  am"}

	t.Run("Booking Requires Token", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPost, "/api/v1/appointments", "", validBooking)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = s.do(http.MethodPost, "/api/v1/appointments", "Bearer not-a-token", validBooking)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		s.appointments.AssertNotCalled(t, "BookAppointment")
	})

	t.Run("Doctors Cannot Book", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPost, "/api/v1/appointments", bearer(t, testDoctorID, constvars.RoleDoctor), validBooking)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Booking Succeeds With Sanitized Time", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("BookAppointment", mock.Anything, testUserID, mock.MatchedBy(func(r *requests.BookAppointment) bool {
			return r.SlotTime == "10:30 AM"
		})).Return(&responses.Appointment{ID: "a1", SlotTime: "10:30 AM"}, nil)

		rr := s.do(http.MethodPost, "/api/v1/appointments", bearer(t, testUserID, constvars.RoleUser), validBooking)

		assert.Equal(t, http.StatusCreated, rr.Code)
		s.appointments.AssertExpectations(t)
	})

	t.Run("Booking Rejection Carries Code", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("BookAppointment", mock.Anything, testUserID, mock.Anything).
			Return(nil, exceptions.ErrSlotAlreadyBooked(testDoctorID, "2025-07-07", 630))

		rr := s.do(http.MethodPost, "/api/v1/appointments", bearer(t, testUserID, constvars.RoleUser), validBooking)

		assert.Equal(t, http.StatusConflict, rr.Code)
		body := decode(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrCodeSlotAlreadyBooked, body.Code)
	})

	t.Run("Booking Rejects Malformed Body", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPost, "/api/v1/appointments", bearer(t, testUserID, constvars.RoleUser), requests.BookAppointment{DoctorID: testDoctorID, SlotDate: "7_7_2025", SlotTime: "10:30 AM"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Booking Is Rate Limited", func(t *testing.T) {
		s := newTestServer(2)
		s.appointments.On("BookAppointment", mock.Anything, testUserID, mock.Anything).
			Return(nil, exceptions.ErrActiveAppointmentExists(testUserID))
		token := bearer(t, testUserID, constvars.RoleUser)

		assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/appointments", token, validBooking).Code)
		assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/appointments", token, validBooking).Code)
		rr := s.do(http.MethodPost, "/api/v1/appointments", token, validBooking)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, constvars.ErrCodeTooManyRequests, decode(t, rr).Code)
		s.appointments.AssertNumberOfCalls(t, "BookAppointment", 2)
	})

	t.Run("Cancel By Doctor Passes Doctor As Actor", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("CancelAppointment", mock.Anything, "a1", testDoctorID).Return(&responses.Appointment{ID: "a1", Cancelled: true}, nil)

		rr := s.do(http.MethodPost, "/api/v1/appointments/a1/cancel", bearer(t, testDoctorID, constvars.RoleDoctor), nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		s.appointments.AssertExpectations(t)
	})

	t.Run("Complete Is Doctor Only", func(t *testing.T) {
		s := newTestServer(10)

		rr := s.do(http.MethodPost, "/api/v1/appointments/a1/complete", bearer(t, testUserID, constvars.RoleUser), nil)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Active Appointment", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("HasActiveAppointment", mock.Anything, testUserID).Return(&responses.ActiveAppointment{HasActive: false}, nil)

		rr := s.do(http.MethodGet, "/api/v1/appointments/active", bearer(t, testUserID, constvars.RoleUser), nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, constvars.GetNoActiveAppointmentSuccessMessage, body.Message)
		assert.JSONEq(t, `{"hasActive":false}`, string(body.Data))
	})

	t.Run("My Appointments", func(t *testing.T) {
		s := newTestServer(10)
		s.appointments.On("ListMyAppointments", mock.Anything, testUserID).Return([]responses.Appointment{{ID: "a1"}}, nil)

		rr := s.do(http.MethodGet, "/api/v1/appointments/me", bearer(t, testUserID, constvars.RoleUser), nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		s.appointments.AssertExpectations(t)
	})
}
