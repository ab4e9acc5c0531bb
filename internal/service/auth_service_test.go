package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/repository"
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

func (m *mockAuthRepository) addUser(user *models.User) {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
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

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) SessionExists(ctx context.Context, refreshToken string) (bool, error) {
	_, ok := m.sessions[refreshToken]
	return ok, nil
}

func newTestUser(email, password string, active bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStaff,
		IsActive:     active,
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	user := newTestUser("staff@ocenagor.ru", "password123", true)
	repo.addUser(user)

	res, err := service.Login(ctx, LoginInput{
		Email:    "staff@ocenagor.ru",
		Password: "password123",
	}, map[string]string{"ip": "127.0.0.1", "user_agent": "go-test"})
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}

	if res.TokenPair.AccessToken == "" || res.TokenPair.RefreshToken == "" {
		t.Fatalf("ожидалась пара токенов")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last_login_at должен быть обновлён")
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}
	for _, s := range repo.sessions {
		if s.IPAddress == nil || *s.IPAddress != "127.0.0.1" {
			t.Fatalf("сессия должна хранить IP клиента")
		}
	}
}

func TestAuthService_LoginRejections(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	repo.addUser(newTestUser("staff@ocenagor.ru", "password123", true))
	repo.addUser(newTestUser("blocked@ocenagor.ru", "password123", false))

	if _, err := service.Login(ctx, LoginInput{Email: "staff@ocenagor.ru", Password: "wrong"}, nil); err == nil {
		t.Fatalf("неверный пароль должен отклоняться")
	}
	if _, err := service.Login(ctx, LoginInput{Email: "missing@ocenagor.ru", Password: "password123"}, nil); err == nil {
		t.Fatalf("неизвестный email должен отклоняться")
	}
	if _, err := service.Login(ctx, LoginInput{Email: "blocked@ocenagor.ru", Password: "password123"}, nil); err == nil {
		t.Fatalf("заблокированный аккаунт не должен входить")
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("сессии не должны создаваться при отказе")
	}
}

func TestAuthService_CreateUser(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	superadmin := models.AccessScope{SuperAdmin: true}
	companyID := uuid.New()

	user, err := service.CreateUser(ctx, superadmin, CreateUserInput{
		Email:      "Staff@Ocenagor.ru",
		Password:   "password123",
		Role:       models.RoleStaff,
		CompanyIDs: []uuid.UUID{companyID},
	})
	if err != nil {
		t.Fatalf("создание сотрудника вернуло ошибку: %v", err)
	}
	if user.Email != "staff@ocenagor.ru" {
		t.Fatalf("email должен приводиться к нижнему регистру, получили %q", user.Email)
	}
	if len(user.CompanyIDs) != 1 || user.CompanyIDs[0] != companyID.String() {
		t.Fatalf("область видимости сотрудника должна содержать компанию")
	}

	// Созданный сотрудник сразу может войти.
	if _, err := service.Login(ctx, LoginInput{Email: "staff@ocenagor.ru", Password: "password123"}, nil); err != nil {
		t.Fatalf("вход нового сотрудника вернул ошибку: %v", err)
	}
}

func TestAuthService_CreateUserRejections(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	superadmin := models.AccessScope{SuperAdmin: true}

	if _, err := service.CreateUser(ctx, models.AccessScope{}, CreateUserInput{
		Email: "staff@ocenagor.ru", Password: "password123", Role: models.RoleStaff,
	}); err == nil {
		t.Fatalf("не суперадмин не должен заводить учётные записи")
	}
	if _, err := service.CreateUser(ctx, superadmin, CreateUserInput{
		Email: "staff@ocenagor.ru", Password: "short", Role: models.RoleStaff,
	}); err == nil {
		t.Fatalf("короткий пароль должен отклоняться")
	}
	if _, err := service.CreateUser(ctx, superadmin, CreateUserInput{
		Email: "staff@ocenagor.ru", Password: "password123", Role: "manager",
	}); err == nil {
		t.Fatalf("неизвестная роль должна отклоняться")
	}
	if len(repo.usersByID) != 0 {
		t.Fatalf("учётные записи не должны создаваться при отказе")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	user := newTestUser("staff@ocenagor.ru", "password123", true)
	repo.addUser(user)

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}
	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
	if _, ok := repo.sessions[tokenPair.RefreshToken]; ok {
		t.Fatalf("старая сессия должна быть удалена")
	}

	// Повторное использование отозванного токена.
	if _, err := service.Refresh(ctx, tokenPair.RefreshToken, nil); err == nil {
		t.Fatalf("отозванный refresh токен должен отклоняться")
	}
}
