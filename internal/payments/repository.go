package payments

import (
	"context"
	"time"

	"github.com/navaro-app/navaro-api/internal/models"
)

// Repository é a persistência dos casos de uso de pagamento. A quitação de
// dívidas, a baixa das taxas pendentes e a confirmação do agendamento
// acontecem na mesma transação da atualização do Payment.
type Repository interface {
	InTx(
		ctx context.Context,
		fn func(r Repository) error,
	) error

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetEstablishment(
		ctx context.Context,
		id uint,
	) (*models.Establishment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate trava a linha; confirmação via pagamento não
	// corre com outra transição de estado.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPayment(
		ctx context.Context,
		id uint,
	) (*models.Payment, error)

	// GetPaymentByProviderIDForUpdate trava a linha do pagamento; é a busca
	// de idempotência dos webhooks, feita dentro da transação para que
	// entregas concorrentes do mesmo evento serializem aqui.
	GetPaymentByProviderIDForUpdate(
		ctx context.Context,
		providerPaymentID string,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	// -------- Dívidas --------
	ListPendingDebts(
		ctx context.Context,
		establishmentID uint,
		userID uint,
	) ([]models.UserDebt, error)

	MarkDebtsPaid(
		ctx context.Context,
		ids []uint,
		paidAt time.Time,
	) error

	// ReducePlatformFees abate as taxas acumuladas com piso em zero.
	ReducePlatformFees(
		ctx context.Context,
		establishmentID uint,
		amount float64,
	) error

	// -------- Carteira --------
	CreditWallet(
		ctx context.Context,
		userID uint,
		amount float64,
		txType string,
		description string,
		referenceID string,
	) error

	WithdrawWallet(
		ctx context.Context,
		userID uint,
		amount float64,
		description string,
		referenceID string,
	) error
}
