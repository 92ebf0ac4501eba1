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

// GigRepository описывает зависимости GigService от слоя хранилища.
type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) (*models.Gig, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	List(ctx context.Context, filter repository.GigFilter) ([]models.Gig, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error)
	Update(ctx context.Context, gig *models.Gig) (*models.Gig, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GigService инкапсулирует бизнес-логику работы с гигами.
type GigService struct {
	repo GigRepository
}

// NewGigService создаёт сервис гигов.
func NewGigService(repo GigRepository) *GigService {
	return &GigService{repo: repo}
}

// GigInput содержит данные для создания или обновления гига.
type GigInput struct {
	Title       string
	Description string
	Budget      float64
}

func validateGigInput(in GigInput) error {
	if err := validation.ValidateGigTitle(in.Title); err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateGigDescription(in.Description); err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateAmount("бюджет", in.Budget); err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

// Create создаёт новый гиг со статусом open.
func (s *GigService) Create(ctx context.Context, ownerID uuid.UUID, in GigInput) (*models.Gig, error) {
	if err := validateGigInput(in); err != nil {
		return nil, err
	}

	gig, err := s.repo.Create(ctx, &models.Gig{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать гиг")
	}

	return gig, nil
}

// Get возвращает гиг по идентификатору.
func (s *GigService) Get(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}
	return gig, nil
}

// List возвращает гиги по фильтру. Пустой статус означает open:
// публичная лента показывает только открытые гиги, если явно не
// запрошено иное.
func (s *GigService) List(ctx context.Context, search, status string) ([]models.Gig, error) {
	if status == "" {
		status = models.GigStatusOpen
	}
	if status == "all" {
		status = ""
	} else if _, ok := models.ValidGigStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус гига")
	}

	gigs, err := s.repo.List(ctx, repository.GigFilter{
		Search: strings.TrimSpace(search),
		Status: status,
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиги")
	}

	return gigs, nil
}

// ListMine возвращает гиги, созданные пользователем.
func (s *GigService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	gigs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиги")
	}
	return gigs, nil
}

// Update обновляет гиг. Разрешено только владельцу.
func (s *GigService) Update(ctx context.Context, gigID, requesterID uuid.UUID, in GigInput) (*models.Gig, error) {
	if err := validateGigInput(in); err != nil {
		return nil, err
	}

	gig, err := s.repo.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}

	if gig.OwnerID != requesterID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "редактировать гиг может только его владелец")
	}

	gig.Title = strings.TrimSpace(in.Title)
	gig.Description = strings.TrimSpace(in.Description)
	gig.Budget = in.Budget

	updated, err := s.repo.Update(ctx, gig)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить гиг")
	}

	return updated, nil
}

// Delete удаляет гиг вместе с откликами. Разрешено только владельцу.
func (s *GigService) Delete(ctx context.Context, gigID, requesterID uuid.UUID) error {
	gig, err := s.repo.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return apperror.ErrGigNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить гиг")
	}

	if gig.OwnerID != requesterID {
		return apperror.New(apperror.ErrCodeForbidden, "удалить гиг может только его владелец")
	}

	if err := s.repo.Delete(ctx, gigID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить гиг")
	}

	return nil
}
