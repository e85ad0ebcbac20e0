package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"jualsampah/internal/models"
	"jualsampah/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles collector authentication for the status actions.
type AuthService struct {
	collectorRepo repositories.CollectorRepository
	jwtSecret     []byte
	tokenTTL      time.Duration
	validate      *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(collectorRepo repositories.CollectorRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		collectorRepo: collectorRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
		validate:      newValidator(),
	}
}

// EnsureCollector creates the collector account if it does not exist yet.
// An existing account keeps its stored password.
func (s *AuthService) EnsureCollector(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("collector username and password are required")
	}

	_, err := s.collectorRepo.GetByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrCollectorNotFound) {
		return fmt.Errorf("failed to look up collector %s: %w", username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	collector := &models.Collector{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.collectorRepo.Create(collector); err != nil {
		return fmt.Errorf("failed to seed collector %s: %w", username, err)
	}
	log.Printf("Seeded collector account %s", username)
	return nil
}

// Login authenticates a collector and returns a signed JWT.
func (s *AuthService) Login(req models.LoginRequest) (string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return "", err
	}

	collector, err := s.collectorRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrCollectorNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(collector.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"collector_id": collector.ID,
		"username":     collector.Username,
		"exp":          now.Add(s.tokenTTL).Unix(),
		"iat":          now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
