package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gigflow/gigflow-backend/internal/models"
	"github.com/gigflow/gigflow-backend/internal/pkg/apperror"
	"github.com/gigflow/gigflow-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := m.usersByEmail[user.Email]; ok {
		return nil, repository.ErrEmailTaken
	}
	created := *user
	created.ID = uuid.New()
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	m.usersByEmail[created.Email] = &created
	m.usersByID[created.ID] = &created
	return &created, nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	if s, ok := m.sessions[refreshToken]; ok {
		return s, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, ok := m.sessions[refreshToken]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) DeleteExpiredSessions(ctx context.Context, userID uuid.UUID) error {
	for token, s := range m.sessions {
		if s.UserID == userID && s.ExpiresAt.Before(time.Now()) {
			delete(m.sessions, token)
		}
	}
	return nil
}

func newTestAuthService() (*AuthService, *mockAuthRepository) {
	repo := newMockAuthRepository()
	tokens := NewTokenManager("access-secret-for-tests", "refresh-secret-for-tests", time.Minute, time.Hour)
	return NewAuthService(repo, tokens), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Name:     "Анна",
		Email:    "Anna@Example.com",
		Password: "password1",
	}, SessionMeta{UserAgent: "test", IP: "127.0.0.1"})

	assert.NoError(t, err)
	assert.Equal(t, "anna@example.com", result.User.Email)
	assert.NotEmpty(t, result.TokenPair.AccessToken)
	assert.NotEmpty(t, result.TokenPair.RefreshToken)
	assert.Len(t, repo.sessions, 1)

	login, err := svc.Login(ctx, LoginInput{
		Email:    "anna@example.com",
		Password: "password1",
	}, SessionMeta{})

	assert.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Анна",
		Email:    "anna@example.com",
		Password: "short",
	}, SessionMeta{})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:     "Анна",
		Email:    "anna@example.com",
		Password: "onlyletters",
	}, SessionMeta{})
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Анна", Email: "anna@example.com", Password: "password1"}, SessionMeta{})
	assert.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Другая Анна", Email: "anna@example.com", Password: "password2"}, SessionMeta{})
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Анна", Email: "anna@example.com", Password: "password1"}, SessionMeta{})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "anna@example.com", Password: "wrongpass1"}, SessionMeta{})
	assert.Error(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password1"}, SessionMeta{})
	assert.Error(t, err)
}

func TestAuthService_RefreshRotatesSession(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Name: "Анна", Email: "anna@example.com", Password: "password1"}, SessionMeta{})
	assert.NoError(t, err)

	oldToken := result.TokenPair.RefreshToken
	pair, err := svc.Refresh(ctx, oldToken, SessionMeta{})
	assert.NoError(t, err)
	assert.NotEqual(t, oldToken, pair.RefreshToken)

	// Старый токен одноразовый.
	_, ok := repo.sessions[oldToken]
	assert.False(t, ok)

	_, err = svc.Refresh(ctx, oldToken, SessionMeta{})
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Name: "Анна", Email: "anna@example.com", Password: "password1"}, SessionMeta{})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, result.TokenPair.RefreshToken))
	assert.Empty(t, repo.sessions)

	err = svc.Logout(ctx, result.TokenPair.RefreshToken)
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess(t *testing.T) {
	tokens := NewTokenManager("access-secret-for-tests", "refresh-secret-for-tests", time.Minute, time.Hour)
	user := &models.User{ID: uuid.New()}

	pair, _, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	userID, err := tokens.ParseAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Refresh токен подписан другим секретом и как access не проходит.
	_, err = tokens.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}
