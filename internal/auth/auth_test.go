package auth

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fleetops/internal/domain"
	"fleetops/internal/redis"
	"fleetops/internal/repository"
)

type mockDriverRepo struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
}

func newMockDriverRepo() *mockDriverRepo {
	return &mockDriverRepo{drivers: make(map[string]*domain.Driver)}
}

func (m *mockDriverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *mockDriverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return driver, nil
}

func (m *mockDriverRepo) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, driver := range m.drivers {
		if driver.Username == username {
			return driver, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockDriverRepo) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*domain.Driver, 0, len(m.drivers))
	for _, driver := range m.drivers {
		all = append(all, driver)
	}
	return all, nil
}

func (m *mockDriverRepo) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newTestService(t *testing.T, drivers *mockDriverRepo) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	admin := AdminCredentials{
		Username:     "admin",
		Email:        "admin@fleetops.local",
		Name:         "Fleet Administrator",
		PasswordHash: mustHash(t, "admin-secret"),
	}
	return NewService("test-secret", time.Hour, drivers, admin, redis.NewLocalSessionStore(), log)
}

func TestLoginAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMockDriverRepo())

	token, identity, err := svc.Login(context.Background(), "admin", "admin-secret")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if identity.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", identity.Role)
	}
	if identity.DriverID != "" {
		t.Errorf("expected no driver id on admin identity, got %s", identity.DriverID)
	}
}

func TestLoginDriver(t *testing.T) {
	t.Parallel()

	drivers := newMockDriverRepo()
	drivers.drivers["drv-1"] = &domain.Driver{
		ID:           "drv-1",
		Name:         "John Smith",
		Email:        "jsmith@fleetops.local",
		Status:       domain.DriverStatusActive,
		Username:     "jsmith",
		PasswordHash: mustHash(t, "driver123"),
	}
	svc := newTestService(t, drivers)

	token, identity, err := svc.Login(context.Background(), "jsmith", "driver123")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if identity.Role != domain.RoleDriver {
		t.Errorf("expected driver role, got %s", identity.Role)
	}
	if identity.DriverID != "drv-1" {
		t.Errorf("expected driver id drv-1, got %s", identity.DriverID)
	}

	resolved, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("expected token to authenticate, got %v", err)
	}
	if resolved.DriverID != "drv-1" {
		t.Errorf("expected resolved driver id drv-1, got %s", resolved.DriverID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	drivers := newMockDriverRepo()
	drivers.drivers["drv-1"] = &domain.Driver{
		ID:           "drv-1",
		Status:       domain.DriverStatusActive,
		Username:     "jsmith",
		PasswordHash: mustHash(t, "driver123"),
	}
	svc := newTestService(t, drivers)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "jsmith", "nope"},
		{"unknown user", "ghost", "driver123"},
		{"empty password", "jsmith", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginRejectsInactiveDriver(t *testing.T) {
	t.Parallel()

	drivers := newMockDriverRepo()
	drivers.drivers["drv-1"] = &domain.Driver{
		ID:           "drv-1",
		Status:       domain.DriverStatusSuspended,
		Username:     "jsmith",
		PasswordHash: mustHash(t, "driver123"),
	}
	svc := newTestService(t, drivers)

	_, _, err := svc.Login(context.Background(), "jsmith", "driver123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMockDriverRepo())

	token, _, err := svc.Login(context.Background(), "admin", "admin-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMockDriverRepo())
	other := newTestService(t, newMockDriverRepo())
	other.jwtSecret = []byte("different-secret")

	token, _, err := svc.Login(context.Background(), "admin", "admin-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken with wrong secret, got %v", err)
	}

	if _, err := svc.ValidateToken("garbage.token.here"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Parallel()

	if _, err := ExtractTokenFromHeader(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty header, got %v", err)
	}
	if _, err := ExtractTokenFromHeader("Basic abc"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for non-bearer, got %v", err)
	}
	token, err := ExtractTokenFromHeader("Bearer abc")
	if err != nil {
		t.Fatalf("expected bearer header to parse, got %v", err)
	}
	if token != "abc" {
		t.Errorf("expected abc, got %s", token)
	}
}
