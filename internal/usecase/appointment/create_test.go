package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/timezone"
	"github.com/navaro-app/navaro-api/internal/wallet"
)

// 2026-09-07 é segunda-feira.
const (
	testDate = "2026-09-07"
	testTime = "14:00"
)

func fullWeek() models.WeekSchedule {
	return models.WeekSchedule{
		"mon": {Open: "09:00", Close: "18:00"},
		"tue": {Open: "09:00", Close: "18:00"},
		"wed": {Open: "09:00", Close: "18:00"},
		"thu": {Open: "09:00", Close: "18:00"},
		"fri": {Open: "09:00", Close: "18:00"},
		"sat": {Open: "09:00", Close: "13:00"},
	}
}

func newCreate(repo *MockRepository) *CreateAppointment {
	return NewCreateAppointment(repo, noopNotifier{}, noopAuditor{})
}

func setupCreateLoads(repo *MockRepository, est *models.Establishment) {
	repo.On("GetEstablishment", mock.Anything, uint(1)).Return(est, nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(3)).
		Return(&models.StaffMember{ID: 3, EstablishmentID: 1, Active: true}, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(5)).
		Return(&models.Service{ID: 5, EstablishmentID: 1, Price: 100, DurationMinutes: 30, Active: true}, nil)
	repo.On("ListBlockIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{}, nil)
	repo.On("ListBookedIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{}, nil)
}

// Pagamento por carteira confirma na hora: débito, Payment e ledger na
// mesma transação da criação.
func TestCreateWithWalletConfirmsImmediately(t *testing.T) {
	repo := new(MockRepository)
	setupCreateLoads(repo, &models.Establishment{
		ID: 1, OwnerID: 2, BusinessHours: fullWeek(), Active: true,
	})

	repo.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(ap *models.Appointment) bool {
		return ap.Status == string(domain.StatusConfirmed) && ap.TotalPrice == 100.0
	})).Return(nil)
	repo.On("WithdrawWallet", mock.Anything, uint(7), 100.0, mock.Anything, mock.Anything).Return(nil)
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Provider == "wallet" && p.Status == models.PaymentSucceeded && p.Amount == 100.0
	})).Return(nil)

	svcID := uint(5)
	ap, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "wallet",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.Equal(t, 30, ap.DurationMinutes)
	repo.AssertExpectations(t)
}

// Saldo insuficiente aborta a transação inteira; nada é persistido além do
// rollback.
func TestCreateWithWalletInsufficientFunds(t *testing.T) {
	repo := new(MockRepository)
	setupCreateLoads(repo, &models.Establishment{
		ID: 1, BusinessHours: fullWeek(), Active: true,
	})

	repo.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil)
	repo.On("WithdrawWallet", mock.Anything, uint(7), 100.0, mock.Anything, mock.Anything).
		Return(wallet.ErrInsufficientFunds)

	svcID := uint(5)
	_, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "wallet",
	})

	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

// Depósito configurado no estabelecimento segura o status em
// awaiting_deposit para métodos não-carteira.
func TestCreateWithDepositAwaitsPayment(t *testing.T) {
	repo := new(MockRepository)
	setupCreateLoads(repo, &models.Establishment{
		ID: 1, BusinessHours: fullWeek(), DepositPercent: 30, Active: true,
	})

	repo.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil)

	svcID := uint(5)
	ap, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "card",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusAwaitingDeposit), ap.Status)
	repo.AssertNotCalled(t, "WithdrawWallet",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateWithoutDepositStaysPending(t *testing.T) {
	repo := new(MockRepository)
	setupCreateLoads(repo, &models.Establishment{
		ID: 1, BusinessHours: fullWeek(), Active: true,
	})

	repo.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil)

	svcID := uint(5)
	ap, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "cash",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
}

// Conflito de horário devolve o erro do validador e não insere nada.
func TestCreateRejectsTimeConflict(t *testing.T) {
	repo := new(MockRepository)

	loc := timezone.Location(timezone.Default())
	busyStart := time.Date(2026, 9, 7, 14, 0, 0, 0, loc)

	repo.On("GetEstablishment", mock.Anything, uint(1)).
		Return(&models.Establishment{ID: 1, BusinessHours: fullWeek(), Active: true}, nil)
	repo.On("GetStaff", mock.Anything, uint(1), uint(3)).
		Return(&models.StaffMember{ID: 3, Active: true}, nil)
	repo.On("GetService", mock.Anything, uint(1), uint(5)).
		Return(&models.Service{ID: 5, Price: 100, DurationMinutes: 30, Active: true}, nil)
	repo.On("ListBlockIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{}, nil)
	repo.On("ListBookedIntervals", mock.Anything, uint(3), mock.Anything, mock.Anything).
		Return([]schedule.Interval{{Start: busyStart, End: busyStart.Add(30 * time.Minute)}}, nil)

	svcID := uint(5)
	_, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "cash",
	})

	var ve *schedule.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, schedule.CodeTimeConflict, ve.Code)
	repo.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

// Ou serviço ou combo, nunca os dois nem nenhum.
func TestCreateRequiresServiceXorBundle(t *testing.T) {
	repo := new(MockRepository)

	_, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "cash",
	})
	assert.Error(t, err)

	svcID := uint(5)
	bundleID := uint(6)
	_, err = newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		BundleID:        &bundleID,
		Date:            testDate,
		Time:            testTime,
		PaymentMethod:   "cash",
	})
	assert.Error(t, err)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	repo := new(MockRepository)

	svcID := uint(5)
	_, err := newCreate(repo).Execute(context.Background(), CreateAppointmentInput{
		UserID:          7,
		EstablishmentID: 1,
		StaffID:         3,
		ServiceID:       &svcID,
		Date:            "07/09/2026",
		Time:            testTime,
		PaymentMethod:   "cash",
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetEstablishment", mock.Anything, mock.Anything)
}
