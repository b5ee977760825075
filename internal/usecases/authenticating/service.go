package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL validade padrão do token (7 dias)
const DefaultTokenTTL = 7 * 24 * time.Hour

type Authenticator interface {
	Login(username, password string) (*domain.LoginResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUser(username string) (*domain.User, error)
}

// Service autentica contra uma lista estática de usuários
type Service struct {
	users     map[string]*domain.User
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewService(users []*domain.User, secretKey string, tokenTTL time.Duration) (*Service, error) {
	if secretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	byUsername := make(map[string]*domain.User, len(users))
	for _, user := range users {
		byUsername[handleUsername(user.Username)] = user
	}

	logrus.WithField("users", len(byUsername)).Info("Lista de usuários do dashboard carregada")

	return &Service{
		users:     byUsername,
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}, nil
}

// ParseUsers lê entradas no formato "usuario:Nome de Exibição:hash-bcrypt"
func ParseUsers(entries []string) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: entrada %d deve ter o formato usuario:nome:hash", ErrInvalidUserEntry, i+1)
		}

		username := handleUsername(parts[0])
		name := strings.TrimSpace(parts[1])
		hash := strings.TrimSpace(parts[2])

		if username == "" {
			return nil, fmt.Errorf("%w: entrada %d sem usuário", ErrInvalidUserEntry, i+1)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: hash bcrypt inválido para %s: %v", ErrInvalidUserEntry, username, err)
		}
		if _, dup := seen[username]; dup {
			return nil, fmt.Errorf("%w: usuário %s repetido", ErrInvalidUserEntry, username)
		}
		seen[username] = struct{}{}

		if name == "" {
			name = username
		}

		users = append(users, &domain.User{
			Username:     username,
			Name:         name,
			PasswordHash: hash,
		})
	}

	return users, nil
}

func (s *Service) Login(username, password string) (*domain.LoginResponse, error) {
	// Validação de entrada
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	username = handleUsername(username)

	user, ok := s.users[username]
	if !ok {
		logrus.WithField("username", username).Warn("Tentativa de login com usuário desconhecido")
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "Usuário ou senha incorretos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("username", username).Warn("Tentativa de login com senha incorreta")
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, username, "Usuário ou senha incorretos")
	}

	expiresAt := s.now().Add(s.tokenTTL)

	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *Service) GetUser(username string) (*domain.User, error) {
	user, ok := s.users[handleUsername(username)]
	if !ok {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, username, "")
	}
	return user, nil
}

func (s *Service) generateJWT(user *domain.User, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		Username: user.Username,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	// Usuário removido da lista perde o acesso mesmo com token válido
	if _, ok := s.users[claims.Username]; !ok {
		return nil, NewUserAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, claims.Username, "usuário não autorizado")
	}

	return claims, nil
}

func handleUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
