package notification

import (
	"log"

	"gorm.io/gorm"

	"github.com/navaro-app/navaro-api/internal/models"
)

// ===============================
// Notification port
// ===============================
//
// Fire-and-forget: a entrega acontece fora da transação chamadora e falha
// de canal nunca propaga.

type Message struct {
	UserID uint
	Title  string
	Body   string
	Type   string
	Data   map[string]any
}

type Service struct {
	db    *gorm.DB
	email *EmailSender
	push  *PushSender
	queue chan Message
}

func NewService(db *gorm.DB, email *EmailSender, push *PushSender) *Service {
	s := &Service{
		db:    db,
		email: email,
		push:  push,
		queue: make(chan Message, 100),
	}

	go s.worker()
	return s
}

// Notify enfileira a mensagem; fila cheia descarta em vez de bloquear o
// caminho de negócio.
func (s *Service) Notify(msg Message) {
	select {
	case s.queue <- msg:
	default:
		log.Println("notification queue full, dropping message")
	}
}

func (s *Service) worker() {
	for msg := range s.queue {
		s.deliver(msg)
	}
}

func (s *Service) deliver(msg Message) {
	row := models.Notification{
		UserID:  msg.UserID,
		Title:   msg.Title,
		Message: msg.Body,
		Type:    msg.Type,
		Data:    models.JSONMap(msg.Data),
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Println("notification persist error:", err)
	}

	var user models.User
	if err := s.db.First(&user, msg.UserID).Error; err != nil {
		log.Println("notification user lookup error:", err)
		return
	}

	if s.email != nil && user.Email != "" {
		if err := s.email.Send(user.Email, msg.Title, msg.Body); err != nil {
			log.Println("notification email error:", err)
		}
	}

	if s.push != nil && user.PushToken != "" {
		if err := s.push.Send(user.PushToken, msg.Title, msg.Body, msg.Data); err != nil {
			log.Println("notification push error:", err)
		}
	}
}

// MarkRead marca uma notificação do usuário como lida.
func (s *Service) MarkRead(userID, notificationID uint) error {
	return s.db.
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}

// ListForUser devolve as notificações mais recentes do usuário.
func (s *Service) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []models.Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
