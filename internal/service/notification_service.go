package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gigflow/gigflow-backend/internal/goroutine"
	"github.com/gigflow/gigflow-backend/internal/logger"
	"github.com/gigflow/gigflow-backend/internal/models"
	"github.com/gigflow/gigflow-backend/internal/ws"
)

// NotificationService отправляет realtime уведомления через WebSocket хаб.
// Доставка best-effort: нет соединения или ошибка отправки, уведомление
// просто теряется, бизнес-операция от этого не зависит.
type NotificationService struct {
	hub *ws.Hub
}

// NewNotificationService создаёт сервис уведомлений.
func NewNotificationService(hub *ws.Hub) *NotificationService {
	return &NotificationService{hub: hub}
}

// HiredPayload описывает событие найма для фрилансера.
type HiredPayload struct {
	BidID    uuid.UUID `json:"bid_id"`
	GigID    uuid.UUID `json:"gig_id"`
	GigTitle string    `json:"gig_title"`
	Message  string    `json:"message"`
}

// NotifyBidHired отправляет фрилансеру событие bids.hired.
// Выполняется в отдельной горутине, вызывающая сторона не блокируется.
func (s *NotificationService) NotifyBidHired(freelancerID uuid.UUID, bid *models.Bid) {
	goroutine.SafeGo(func() {
		gigTitle := ""
		if bid.GigTitle != nil {
			gigTitle = *bid.GigTitle
		}

		payload := HiredPayload{
			BidID:    bid.ID,
			GigID:    bid.GigID,
			GigTitle: gigTitle,
			Message:  fmt.Sprintf("Вас наняли на гиг %q!", gigTitle),
		}

		if err := s.hub.BroadcastToUser(freelancerID, "bids.hired", payload); err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"user_id": freelancerID,
				"bid_id":  bid.ID,
				"error":   err.Error(),
			}).Warn("notification service: уведомление о найме не доставлено")
		}
	})
}
