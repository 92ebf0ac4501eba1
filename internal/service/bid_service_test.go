package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gigflow/gigflow-backend/internal/models"
	"github.com/gigflow/gigflow-backend/internal/pkg/apperror"
	"github.com/gigflow/gigflow-backend/internal/repository"
)

type mockBidRepo struct {
	mock.Mock
}

func (m *mockBidRepo) Create(ctx context.Context, bid *models.Bid) (*models.Bid, error) {
	args := m.Called(ctx, bid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) GetByGigAndFreelancer(ctx context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, gigID, freelancerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, gigID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	args := m.Called(ctx, freelancerID)
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *mockBidRepo) Hire(ctx context.Context, gigID, bidID uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, gigID, bidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

type mockGigRepoForBids struct {
	mock.Mock
}

func (m *mockGigRepoForBids) Create(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	args := m.Called(ctx, gig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *mockGigRepoForBids) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *mockGigRepoForBids) List(ctx context.Context, filter repository.GigFilter) ([]models.Gig, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Gig), args.Error(1)
}

func (m *mockGigRepoForBids) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Gig), args.Error(1)
}

func (m *mockGigRepoForBids) Update(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	args := m.Called(ctx, gig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *mockGigRepoForBids) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockHireNotifier struct {
	mock.Mock
}

func (m *mockHireNotifier) NotifyBidHired(freelancerID uuid.UUID, bid *models.Bid) {
	m.Called(freelancerID, bid)
}

func openGig(ownerID uuid.UUID) *models.Gig {
	return &models.Gig{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   "Сайт на Go",
		Status:  models.GigStatusOpen,
	}
}

func TestBidService_Submit_Success(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	ownerID := uuid.New()
	freelancerID := uuid.New()
	gig := openGig(ownerID)

	freelancerName := "Анна"
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)
	bidRepo.On("GetByGigAndFreelancer", ctx, gig.ID, freelancerID).Return(nil, repository.ErrBidNotFound)
	bidRepo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(&models.Bid{
		ID:             uuid.New(),
		GigID:          gig.ID,
		FreelancerID:   freelancerID,
		Status:         models.BidStatusPending,
		FreelancerName: &freelancerName,
	}, nil)

	bid, err := svc.Submit(ctx, freelancerID, BidInput{
		GigID:   gig.ID,
		Message: "Готов сделать за неделю",
		Price:   500,
	})

	assert.NoError(t, err)
	assert.NotNil(t, bid)
	assert.Equal(t, models.BidStatusPending, bid.Status)
	if assert.NotNil(t, bid.FreelancerName) {
		assert.Equal(t, freelancerName, *bid.FreelancerName)
	}
	bidRepo.AssertExpectations(t)
}

func TestBidService_Submit_ValidationBeforeLookups(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, uuid.New(), BidInput{GigID: uuid.New(), Message: "", Price: 100})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Submit(ctx, uuid.New(), BidInput{GigID: uuid.New(), Message: "ок, берусь", Price: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Submit(ctx, uuid.New(), BidInput{GigID: uuid.New(), Message: "ок, берусь", Price: -5})
	assert.True(t, apperror.IsValidation(err))

	// До репозиториев дело дойти не должно.
	gigRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_Submit_GigNotFound(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	gigID := uuid.New()
	gigRepo.On("GetByID", ctx, gigID).Return(nil, repository.ErrGigNotFound)

	_, err := svc.Submit(ctx, uuid.New(), BidInput{GigID: gigID, Message: "возьмусь", Price: 100})
	assert.True(t, apperror.IsNotFound(err))
}

func TestBidService_Submit_GigNotOpen(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	gig := openGig(uuid.New())
	gig.Status = models.GigStatusAssigned
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)

	_, err := svc.Submit(ctx, uuid.New(), BidInput{GigID: gig.ID, Message: "возьмусь", Price: 100})
	assert.True(t, apperror.IsInvalidState(err))
	bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_Submit_OwnGig(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	ownerID := uuid.New()
	gig := openGig(ownerID)
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)

	_, err := svc.Submit(ctx, ownerID, BidInput{GigID: gig.ID, Message: "возьмусь", Price: 100})
	assert.True(t, apperror.IsInvalidState(err))
	bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_Submit_Duplicate(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	freelancerID := uuid.New()
	gig := openGig(uuid.New())
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)
	bidRepo.On("GetByGigAndFreelancer", ctx, gig.ID, freelancerID).Return(&models.Bid{ID: uuid.New()}, nil)

	_, err := svc.Submit(ctx, freelancerID, BidInput{GigID: gig.ID, Message: "возьмусь", Price: 100})
	assert.True(t, apperror.IsConflict(err))
	bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_Submit_DuplicateRace(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	freelancerID := uuid.New()
	gig := openGig(uuid.New())
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)
	bidRepo.On("GetByGigAndFreelancer", ctx, gig.ID, freelancerID).Return(nil, repository.ErrBidNotFound)
	// Конкурент успел вставить отклик между проверкой и вставкой:
	// последнее слово за уникальным ограничением БД.
	bidRepo.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(nil, repository.ErrDuplicateBid)

	_, err := svc.Submit(ctx, freelancerID, BidInput{GigID: gig.ID, Message: "возьмусь", Price: 100})
	assert.True(t, apperror.IsConflict(err))
}

func TestBidService_Hire_Success_Notifies(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	notifier := new(mockHireNotifier)
	svc := NewBidService(bidRepo, gigRepo, notifier)
	ctx := context.Background()

	ownerID := uuid.New()
	freelancerID := uuid.New()
	gig := openGig(ownerID)
	bidID := uuid.New()

	pending := &models.Bid{
		ID:           bidID,
		GigID:        gig.ID,
		FreelancerID: freelancerID,
		Status:       models.BidStatusPending,
		CreatedAt:    time.Now(),
	}
	gigTitle := gig.Title
	freelancerName := "Борис"
	hired := &models.Bid{
		ID:             bidID,
		GigID:          gig.ID,
		FreelancerID:   freelancerID,
		Status:         models.BidStatusHired,
		GigTitle:       &gigTitle,
		FreelancerName: &freelancerName,
	}

	bidRepo.On("GetByID", ctx, bidID).Return(pending, nil)
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)
	bidRepo.On("Hire", ctx, gig.ID, bidID).Return(hired, nil)
	notifier.On("NotifyBidHired", freelancerID, hired).Return()

	result, err := svc.Hire(ctx, bidID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, models.BidStatusHired, result.Status)
	// Результат найма несёт обогащение из транзакции: имя фрилансера и заголовок гига.
	if assert.NotNil(t, result.FreelancerName) {
		assert.Equal(t, freelancerName, *result.FreelancerName)
	}
	if assert.NotNil(t, result.GigTitle) {
		assert.Equal(t, gigTitle, *result.GigTitle)
	}
	notifier.AssertCalled(t, "NotifyBidHired", freelancerID, hired)
}

func TestBidService_Hire_BidNotFound(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	notifier := new(mockHireNotifier)
	svc := NewBidService(bidRepo, gigRepo, notifier)
	ctx := context.Background()

	bidID := uuid.New()
	bidRepo.On("GetByID", ctx, bidID).Return(nil, repository.ErrBidNotFound)

	_, err := svc.Hire(ctx, bidID, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
	notifier.AssertNotCalled(t, "NotifyBidHired", mock.Anything, mock.Anything)
}

func TestBidService_Hire_NotOwner(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	notifier := new(mockHireNotifier)
	svc := NewBidService(bidRepo, gigRepo, notifier)
	ctx := context.Background()

	gig := openGig(uuid.New())
	bid := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: uuid.New(), Status: models.BidStatusPending}

	bidRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)

	_, err := svc.Hire(ctx, bid.ID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
	bidRepo.AssertNotCalled(t, "Hire", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyBidHired", mock.Anything, mock.Anything)
}

func TestBidService_Hire_GigNotOpen(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	notifier := new(mockHireNotifier)
	svc := NewBidService(bidRepo, gigRepo, notifier)
	ctx := context.Background()

	ownerID := uuid.New()
	gig := openGig(ownerID)
	gig.Status = models.GigStatusAssigned
	bid := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: uuid.New(), Status: models.BidStatusRejected}

	bidRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)

	_, err := svc.Hire(ctx, bid.ID, ownerID)
	assert.True(t, apperror.IsInvalidState(err))
	bidRepo.AssertNotCalled(t, "Hire", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyBidHired", mock.Anything, mock.Anything)
}

func TestBidService_Hire_ConcurrentLoser(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	notifier := new(mockHireNotifier)
	svc := NewBidService(bidRepo, gigRepo, notifier)
	ctx := context.Background()

	ownerID := uuid.New()
	gig := openGig(ownerID)
	bid := &models.Bid{ID: uuid.New(), GigID: gig.ID, FreelancerID: uuid.New(), Status: models.BidStatusPending}

	bidRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)
	// Гиг перехвачен конкурентным наймом: под блокировкой строки
	// транзакция видит assigned и откатывается.
	bidRepo.On("Hire", ctx, gig.ID, bid.ID).Return(nil, repository.ErrGigNotOpen)

	_, err := svc.Hire(ctx, bid.ID, ownerID)
	assert.True(t, apperror.IsInvalidState(err))
	notifier.AssertNotCalled(t, "NotifyBidHired", mock.Anything, mock.Anything)
}

func TestBidService_ListByGig_OwnerOnly(t *testing.T) {
	bidRepo := new(mockBidRepo)
	gigRepo := new(mockGigRepoForBids)
	svc := NewBidService(bidRepo, gigRepo, nil)
	ctx := context.Background()

	gig := openGig(uuid.New())
	gigRepo.On("GetByID", ctx, gig.ID).Return(gig, nil)

	_, err := svc.ListByGig(ctx, gig.ID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))

	bidRepo.On("ListByGig", ctx, gig.ID).Return([]models.Bid{{ID: uuid.New()}}, nil)
	bids, err := svc.ListByGig(ctx, gig.ID, gig.OwnerID)
	assert.NoError(t, err)
	assert.Len(t, bids, 1)
}
