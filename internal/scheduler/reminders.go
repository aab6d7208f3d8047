package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/timezone"
)

type Notifier interface {
	Notify(notification.Message)
}

// Scheduler roda as tarefas recorrentes do serviço. Hoje só o lembrete
// de agendamento do dia seguinte.
type Scheduler struct {
	db       *gorm.DB
	notifier Notifier
	cron     *cron.Cron
}

func New(db *gorm.DB, notifier Notifier) *Scheduler {
	return &Scheduler{
		db:       db,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() {
	// Janela larga (23h–25h) com flag de enviado: rodar a cada meia
	// hora não duplica lembrete nem deixa horário de fora.
	s.cron.AddFunc("*/30 * * * *", s.sendReminders)
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sendReminders() {
	now := timezone.Now()
	from := now.Add(23 * time.Hour)
	to := now.Add(25 * time.Hour)

	var appointments []models.Appointment
	err := s.db.
		Preload("Service").
		Preload("Bundle").
		Preload("Establishment").
		Where(
			"status IN ('pending', 'awaiting_deposit', 'confirmed') AND reminder_sent = false AND scheduled_at BETWEEN ? AND ?",
			from, to,
		).
		Find(&appointments).Error
	if err != nil {
		log.Printf("[scheduler] reminder query failed: %v", err)
		return
	}

	loc := timezone.Location(timezone.Default())

	for _, ap := range appointments {
		name := "seu atendimento"
		if ap.Service != nil {
			name = ap.Service.Name
		} else if ap.Bundle != nil {
			name = ap.Bundle.Name
		}

		s.notifier.Notify(notification.Message{
			UserID: ap.UserID,
			Title:  "Lembrete de agendamento",
			Body: fmt.Sprintf(
				"Amanhã às %s: %s em %s.",
				ap.ScheduledAt.In(loc).Format("15:04"),
				name,
				ap.Establishment.Name,
			),
			Type: "appointment_reminder",
			Data: map[string]any{"appointment_id": ap.ID},
		})

		// Flag marcada fora de transação: perder um lembrete é melhor
		// que mandar dois.
		if err := s.db.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			UpdateColumn("reminder_sent", true).Error; err != nil {
			log.Printf("[scheduler] reminder flag failed for appointment %d: %v", ap.ID, err)
		}
	}

	if len(appointments) > 0 {
		log.Printf("[scheduler] %d reminder(s) dispatched", len(appointments))
	}
}
