package appointment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
)

// MockRepository implementa domain.Repository; InTx e InSerializableTx
// apenas repassam fn sobre o próprio mock.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) InSerializableTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) GetEstablishment(ctx context.Context, id uint) (*models.Establishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Establishment), args.Error(1)
}

func (m *MockRepository) GetStaff(ctx context.Context, establishmentID, staffID uint) (*models.StaffMember, error) {
	args := m.Called(ctx, establishmentID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffMember), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, establishmentID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) GetBundle(ctx context.Context, establishmentID, bundleID uint) (*models.ServiceBundle, error) {
	args := m.Called(ctx, establishmentID, bundleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceBundle), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) ListBookedIntervals(ctx context.Context, staffID uint, from, to time.Time) ([]schedule.Interval, error) {
	args := m.Called(ctx, staffID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Interval), args.Error(1)
}

func (m *MockRepository) ListBlockIntervals(ctx context.Context, staffID uint, from, to time.Time) ([]schedule.Interval, error) {
	args := m.Called(ctx, staffID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Interval), args.Error(1)
}

func (m *MockRepository) ListAppointmentsByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListAppointmentsForPeriod(ctx context.Context, establishmentID uint, start, end time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, establishmentID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) AccruePlatformFee(ctx context.Context, establishmentID uint, amount float64) error {
	args := m.Called(ctx, establishmentID, amount)
	return args.Error(0)
}

func (m *MockRepository) CreditWallet(ctx context.Context, userID uint, amount float64, txType, description, referenceID string) error {
	args := m.Called(ctx, userID, amount, txType, description, referenceID)
	return args.Error(0)
}

func (m *MockRepository) WithdrawWallet(ctx context.Context, userID uint, amount float64, description, referenceID string) error {
	args := m.Called(ctx, userID, amount, description, referenceID)
	return args.Error(0)
}

func (m *MockRepository) IncrementGoalsOnCompletion(ctx context.Context, staffID uint, completedAt time.Time, revenue float64) error {
	args := m.Called(ctx, staffID, completedAt, revenue)
	return args.Error(0)
}

func (m *MockRepository) CountOtherCompletedByUser(ctx context.Context, userID, excludeAppointmentID uint) (int64, error) {
	args := m.Called(ctx, userID, excludeAppointmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateDebt(ctx context.Context, debt *models.UserDebt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// --------------------------------------------------
// Portas de apoio
// --------------------------------------------------

type noopNotifier struct{}

func (noopNotifier) Notify(notification.Message) {}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

type stubSettings struct {
	bools  map[string]bool
	floats map[string]float64
}

func (s stubSettings) GetBool(ctx context.Context, key string, def bool) bool {
	if v, ok := s.bools[key]; ok {
		return v
	}
	return def
}

func (s stubSettings) GetFloat(ctx context.Context, key string, def float64) float64 {
	if v, ok := s.floats[key]; ok {
		return v
	}
	return def
}
