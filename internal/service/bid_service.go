package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/gigflow/gigflow-backend/internal/models"
	"github.com/gigflow/gigflow-backend/internal/pkg/apperror"
	"github.com/gigflow/gigflow-backend/internal/repository"
	"github.com/gigflow/gigflow-backend/internal/validation"
)

// BidRepository описывает зависимости BidService от слоя хранилища.
type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) (*models.Bid, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error)
	ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error)
	Hire(ctx context.Context, gigID, bidID uuid.UUID) (*models.Bid, error)
}

// HireNotifier уведомляет фрилансера о найме. Вызывается строго после
// коммита транзакции найма, ошибки доставки не влияют на результат.
type HireNotifier interface {
	NotifyBidHired(freelancerID uuid.UUID, bid *models.Bid)
}

// BidService инкапсулирует бизнес-логику откликов и найма.
type BidService struct {
	bids     BidRepository
	gigs     GigRepository
	notifier HireNotifier
}

// NewBidService создаёт сервис откликов.
func NewBidService(bids BidRepository, gigs GigRepository, notifier HireNotifier) *BidService {
	return &BidService{
		bids:     bids,
		gigs:     gigs,
		notifier: notifier,
	}
}

// BidInput содержит данные нового отклика.
type BidInput struct {
	GigID   uuid.UUID
	Message string
	Price   float64
}

// Submit создаёт отклик фрилансера на гиг.
// Предусловия проверяются по порядку: валидация полей, существование гига,
// гиг открыт, не свой гиг, нет дубликата. Последнее слово за уникальным
// ограничением БД: конкурентный дубликат ловится по нарушению ограничения.
func (s *BidService) Submit(ctx context.Context, freelancerID uuid.UUID, in BidInput) (*models.Bid, error) {
	if err := validation.ValidateBidMessage(in.Message); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateAmount("цена", in.Price); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	gig, err := s.gigs.GetByID(ctx, in.GigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}

	if gig.Status != models.GigStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "гиг больше не принимает отклики")
	}

	if gig.OwnerID == freelancerID {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "нельзя откликаться на собственный гиг")
	}

	if _, err := s.bids.GetByGigAndFreelancer(ctx, in.GigID, freelancerID); err == nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отклик на этот гиг")
	} else if !errors.Is(err, repository.ErrBidNotFound) {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить отклик")
	}

	bid, err := s.bids.Create(ctx, &models.Bid{
		GigID:        in.GigID,
		FreelancerID: freelancerID,
		Message:      strings.TrimSpace(in.Message),
		Price:        in.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBid):
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отклик на этот гиг")
		case errors.Is(err, repository.ErrGigNotOpen):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "гиг больше не принимает отклики")
		case errors.Is(err, repository.ErrGigNotFound):
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать отклик")
	}

	return bid, nil
}

// Hire нанимает фрилансера по отклику.
// Предусловия проверяются по порядку: отклик существует, запрос от
// владельца гига, гиг открыт. Затем репозиторий атомарно переводит гиг
// в assigned, отклик в hired, остальные pending отклики в rejected.
// Уведомление отправляется только после успешного коммита.
func (s *BidService) Hire(ctx context.Context, bidID, requesterID uuid.UUID) (*models.Bid, error) {
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить отклик")
	}

	gig, err := s.gigs.GetByID(ctx, bid.GigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}

	if gig.OwnerID != requesterID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нанимать может только владелец гига")
	}

	if gig.Status != models.GigStatusOpen {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "гиг больше не открыт для найма")
	}

	hired, err := s.bids.Hire(ctx, bid.GigID, bidID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGigNotOpen):
			return nil, apperror.New(apperror.ErrCodeInvalidState, "гиг больше не открыт для найма")
		case errors.Is(err, repository.ErrGigNotFound):
			return nil, apperror.ErrGigNotFound
		case errors.Is(err, repository.ErrBidNotFound):
			return nil, apperror.ErrBidNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось выполнить наём")
	}

	if s.notifier != nil {
		s.notifier.NotifyBidHired(hired.FreelancerID, hired)
	}

	return hired, nil
}

// ListByGig возвращает отклики на гиг. Доступно только владельцу гига.
func (s *BidService) ListByGig(ctx context.Context, gigID, requesterID uuid.UUID) ([]models.Bid, error) {
	gig, err := s.gigs.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}

	if gig.OwnerID != requesterID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "просматривать отклики может только владелец гига")
	}

	bids, err := s.bids.ListByGig(ctx, gigID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить отклики")
	}

	return bids, nil
}

// ListMine возвращает отклики фрилансера.
func (s *BidService) ListMine(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	bids, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить отклики")
	}
	return bids, nil
}
