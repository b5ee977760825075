package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User usuário autorizado a acessar o dashboard (lista estática)
type User struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// LoginRequest corpo do POST /v1/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
