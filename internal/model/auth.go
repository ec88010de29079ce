// internal/model/auth.go
package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LoginResponse はログインAPIのレスポンス
type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	User      string `json:"usuario,omitempty"`
	Email     string `json:"email,omitempty"`
	IsPremium bool   `json:"is_premium"`
	Message   string `json:"message,omitempty"`
}

// UserProfile はクライアントに保存するログインユーザー情報
type UserProfile struct {
	Name      string `json:"nome"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

// JWTCustomClaims はスタブAPIが発行するトークンのクレーム
type JWTCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
