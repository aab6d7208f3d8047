package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/appointment"
	"github.com/navaro-app/navaro-api/internal/domain/schedule"
	"github.com/navaro-app/navaro-api/internal/httperr"
	"github.com/navaro-app/navaro-api/internal/metrics"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID          uint
	EstablishmentID uint
	StaffID         uint

	// Exatamente um dos dois.
	ServiceID *uint
	BundleID  *uint

	Date string // 2006-01-02
	Time string // 15:04

	// card | pix | cash | wallet
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora no timezone da aplicação
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(timezone.Default()),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if (in.ServiceID == nil) == (in.BundleID == nil) {
		return nil, httperr.ErrBusiness("service_or_bundle_required")
	}

	var ap *models.Appointment
	var ownerID uint

	// Reserva inteira sob SERIALIZABLE: duas corridas pelo mesmo horário
	// terminam com um sucesso e um TIME_CONFLICT/retry, nunca dois inserts.
	err = uc.repo.InSerializableTx(ctx, func(r domain.Repository) error {

		// --------------------------------------------------
		// 2️⃣ Estabelecimento
		// --------------------------------------------------
		est, err := r.GetEstablishment(ctx, in.EstablishmentID)
		if err != nil || !est.Active {
			return httperr.ErrBusiness("establishment_not_found")
		}
		ownerID = est.OwnerID

		// --------------------------------------------------
		// 3️⃣ Profissional
		// --------------------------------------------------
		staff, err := r.GetStaff(ctx, in.EstablishmentID, in.StaffID)
		if err != nil || !staff.Active {
			return httperr.ErrBusiness("staff_not_found")
		}

		// --------------------------------------------------
		// 4️⃣ Serviço ou combo (snapshot de preço e duração)
		// --------------------------------------------------
		var (
			totalPrice      float64
			durationMinutes int
			depositRequired bool
		)

		if in.ServiceID != nil {
			svc, err := r.GetService(ctx, in.EstablishmentID, *in.ServiceID)
			if err != nil || !svc.Active {
				return httperr.ErrBusiness("service_not_found")
			}
			totalPrice = svc.Price
			durationMinutes = svc.DurationMinutes
			depositRequired = svc.DepositRequired
		} else {
			bundle, err := r.GetBundle(ctx, in.EstablishmentID, *in.BundleID)
			if err != nil || !bundle.Active {
				return httperr.ErrBusiness("bundle_not_found")
			}
			totalPrice = bundle.Price
			durationMinutes = bundle.DurationMinutes
		}

		if durationMinutes <= 0 {
			return httperr.ErrBusiness("invalid_service_duration")
		}

		end := start.Add(time.Duration(durationMinutes) * time.Minute)

		// --------------------------------------------------
		// 5️⃣ Validador de disponibilidade
		// --------------------------------------------------
		blocks, err := r.ListBlockIntervals(ctx, in.StaffID, start, end)
		if err != nil {
			return err
		}

		existing, err := r.ListBookedIntervals(ctx, in.StaffID, start, end)
		if err != nil {
			return err
		}

		if ve := schedule.Check(schedule.CheckInput{
			BusinessHours:   est.BusinessHours,
			StaffSchedule:   staff.WorkSchedule,
			StartAt:         start,
			DurationMinutes: durationMinutes,
			Blocks:          blocks,
			Existing:        existing,
		}); ve != nil {
			metrics.ValidationRejections.WithLabelValues(ve.Code).Inc()
			return ve
		}

		// --------------------------------------------------
		// 6️⃣ Status inicial
		// --------------------------------------------------
		status := domain.InitialStatus(depositRequired || est.DepositPercent > 0)
		if in.PaymentMethod == "wallet" {
			status = domain.StatusConfirmed
		}

		ap = &models.Appointment{
			UserID:          in.UserID,
			EstablishmentID: in.EstablishmentID,
			StaffID:         in.StaffID,
			ServiceID:       in.ServiceID,
			BundleID:        in.BundleID,
			ScheduledAt:     start,
			DurationMinutes: durationMinutes,
			Status:          string(status),
			PaymentMethod:   in.PaymentMethod,
			TotalPrice:      totalPrice,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		// --------------------------------------------------
		// 7️⃣ Pagamento por carteira (síncrono, mesma transação)
		// --------------------------------------------------
		if in.PaymentMethod == "wallet" {
			if err := r.WithdrawWallet(
				ctx,
				in.UserID,
				totalPrice,
				"appointment payment",
				fmt.Sprint(ap.ID),
			); err != nil {
				return err
			}

			apID := ap.ID
			if err := r.CreatePayment(ctx, &models.Payment{
				UserID:            in.UserID,
				EstablishmentID:   in.EstablishmentID,
				AppointmentID:     &apID,
				Purpose:           models.PaymentPurposeAppointment,
				Provider:          "wallet",
				ProviderPaymentID: "wallet_" + uuid.NewString(),
				Amount:            totalPrice,
				Status:            models.PaymentSucceeded,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Efeitos fora da transação
	// --------------------------------------------------
	metrics.AppointmentsCreated.Inc()

	uc.notifier.Notify(notification.Message{
		UserID: in.UserID,
		Title:  "Agendamento recebido",
		Body:   fmt.Sprintf("Seu horário de %s às %s foi registrado.", in.Date, in.Time),
		Type:   "appointment_created",
		Data:   map[string]any{"appointment_id": ap.ID},
	})
	uc.notifier.Notify(notification.Message{
		UserID: ownerID,
		Title:  "Novo agendamento",
		Body:   fmt.Sprintf("Novo horário reservado para %s às %s.", in.Date, in.Time),
		Type:   "appointment_created",
		Data:   map[string]any{"appointment_id": ap.ID},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		ActorID:         &in.UserID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
