package appointment

import (
	"context"
	"time"

	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/models"
)

// Repository reúne a persistência do núcleo de agendamento. As operações de
// liquidação existem aqui para rodarem na mesma transação da mudança de
// status.
type Repository interface {
	// -------- Transações --------
	// InTx executa fn com um Repository amarrado a uma transação.
	InTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	// InSerializableTx idem, com isolamento SERIALIZABLE e retry em falha
	// de serialização; é o guarda-chuva do caminho de reserva.
	InSerializableTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	// -------- Cargas --------
	GetEstablishment(
		ctx context.Context,
		id uint,
	) (*models.Establishment, error)

	GetStaff(
		ctx context.Context,
		establishmentID uint,
		staffID uint,
	) (*models.StaffMember, error)

	GetService(
		ctx context.Context,
		establishmentID uint,
		serviceID uint,
	) (*models.Service, error)

	GetBundle(
		ctx context.Context,
		establishmentID uint,
		bundleID uint,
	) (*models.ServiceBundle, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate trava a linha para a transição de estado.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Dados do validador --------
	// ListBookedIntervals devolve os intervalos dos agendamentos não
	// cancelados do profissional que tocam [from, to).
	ListBookedIntervals(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]schedule.Interval, error)

	ListBlockIntervals(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]schedule.Interval, error)

	// -------- Listagens --------
	ListAppointmentsByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		establishmentID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Liquidação --------
	AccruePlatformFee(
		ctx context.Context,
		establishmentID uint,
		amount float64,
	) error

	CreditWallet(
		ctx context.Context,
		userID uint,
		amount float64,
		txType string,
		description string,
		referenceID string,
	) error

	// WithdrawWallet debita com saldo travado; devolve
	// wallet.ErrInsufficientFunds sem débito parcial.
	WithdrawWallet(
		ctx context.Context,
		userID uint,
		amount float64,
		description string,
		referenceID string,
	) error

	IncrementGoalsOnCompletion(
		ctx context.Context,
		staffID uint,
		completedAt time.Time,
		revenue float64,
	) error

	CountOtherCompletedByUser(
		ctx context.Context,
		userID uint,
		excludeAppointmentID uint,
	) (int64, error)

	// -------- Dívidas e pagamentos --------
	CreateDebt(
		ctx context.Context,
		debt *models.UserDebt,
	) error

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
