package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pirlanta/internal/authz"
	"pirlanta/internal/middleware"
	"pirlanta/internal/models"
)

// AdminAccount: учётка из конфига (пароль только bcrypt-хэшем)
type AdminAccount struct {
	Username     string
	PasswordHash string
	RoleID       int
}

type AdminToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

type AuthService struct {
	accounts map[string]AdminAccount
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(accounts []AdminAccount, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	byName := make(map[string]AdminAccount, len(accounts))
	for _, a := range accounts {
		name := strings.TrimSpace(a.Username)
		if name == "" || strings.TrimSpace(a.PasswordHash) == "" {
			continue
		}
		byName[strings.ToLower(name)] = a
	}
	return &AuthService{accounts: byName, secret: secret, ttl: ttl, now: time.Now}
}

func (s *AuthService) Secret() []byte { return s.secret }

// Login: bcrypt-сверка и выпуск HS256 access-токена
func (s *AuthService) Login(username, password string) (*AdminToken, error) {
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		log.Printf("[auth][login] unknown admin %q", username)
		return nil, models.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		log.Printf("[auth][login] bcrypt mismatch for %q", acc.Username)
		return nil, models.ErrUnauthorized
	}

	exp := s.now().Add(s.ttl)
	claims := &middleware.Claims{
		Username: acc.Username,
		RoleID:   acc.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	log.Printf("[auth][login] ok admin=%q role=%s", acc.Username, authz.RoleName(acc.RoleID))
	return &AdminToken{AccessToken: signed, ExpiresAt: exp, Role: authz.RoleName(acc.RoleID)}, nil
}

// HashPassword: для генерации password_hash в конфиг
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(b), nil
}
