package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fleetops/internal/domain"
	"fleetops/internal/redis"
	"fleetops/internal/repository"
)

var (
	// ErrInvalidToken is returned when a token fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned on a failed login. It covers
	// unknown usernames too, so a caller cannot probe for valid ones.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a valid token refers to a
	// session that was logged out or expired server-side.
	ErrSessionNotFound = errors.New("session not found")
)

// AdminCredentials is the configured admin login. The hash is bcrypt.
type AdminCredentials struct {
	Username     string
	Email        string
	Name         string
	PasswordHash string
}

// Service handles login, logout and token validation. Role is decided
// here at login time and carried in the signed token; it is never
// taken from the client.
type Service struct {
	jwtSecret  []byte
	tokenExp   time.Duration
	driverRepo repository.DriverRepository
	admin      AdminCredentials
	sessions   redis.SessionStore
	log        *logrus.Logger
}

// NewService creates a new authentication service.
func NewService(
	jwtSecret string,
	tokenExp time.Duration,
	driverRepo repository.DriverRepository,
	admin AdminCredentials,
	sessions redis.SessionStore,
	log *logrus.Logger,
) *Service {
	return &Service{
		jwtSecret:  []byte(jwtSecret),
		tokenExp:   tokenExp,
		driverRepo: driverRepo,
		admin:      admin,
		sessions:   sessions,
		log:        log,
	}
}

// Claims is the decoded content of a fleetops JWT.
type Claims struct {
	SessionID string
	Identity  domain.Identity
	Exp       int64
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword checks if a password matches a bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies credentials against the configured admin first, then
// the driver registry, and on success issues a signed token and opens
// a session record with the same lifetime.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	identity, err := s.resolveIdentity(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.New().String()
	token, err := s.generateToken(sessionID, *identity)
	if err != nil {
		return "", nil, err
	}

	if err := s.sessions.Put(ctx, sessionID, *identity, s.tokenExp); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"username": username,
		"role":     identity.Role,
	}).Info("login")

	return token, identity, nil
}

// Logout deletes the session behind a token. An already-invalid token
// is not an error; the session is gone either way.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// Authenticate validates a token and resolves its live session.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	identity, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrSessionNotFound
	}
	return identity, nil
}

func (s *Service) resolveIdentity(ctx context.Context, username, password string) (*domain.Identity, error) {
	if s.admin.Username != "" && username == s.admin.Username {
		if !CheckPassword(password, s.admin.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		return &domain.Identity{
			ID:    "admin",
			Email: s.admin.Email,
			Name:  s.admin.Name,
			Role:  domain.RoleAdmin,
		}, nil
	}

	driver, err := s.driverRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if driver.Status != domain.DriverStatusActive {
		return nil, ErrInvalidCredentials
	}
	if driver.PasswordHash == "" || !CheckPassword(password, driver.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &domain.Identity{
		ID:       driver.ID,
		Email:    driver.Email,
		Name:     driver.Name,
		Role:     domain.RoleDriver,
		DriverID: driver.ID,
	}, nil
}

func (s *Service) generateToken(sessionID string, identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":       sessionID,
		"sub":       identity.ID,
		"email":     identity.Email,
		"name":      identity.Name,
		"role":      string(identity.Role),
		"driver_id": identity.DriverID,
		"exp":       now.Add(s.tokenExp).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a signed token and returns its claims. The
// session behind it is not checked here; use Authenticate for that.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sid, ok := mapClaims["sid"].(string)
	if !ok || sid == "" {
		return nil, ErrInvalidToken
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)
	name, _ := mapClaims["name"].(string)
	driverID, _ := mapClaims["driver_id"].(string)

	return &Claims{
		SessionID: sid,
		Identity: domain.Identity{
			ID:       sub,
			Email:    email,
			Name:     name,
			Role:     domain.Role(role),
			DriverID: driverID,
		},
		Exp: int64(exp),
	}, nil
}

// ExtractTokenFromHeader extracts a bearer token from an Authorization
// header value.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
