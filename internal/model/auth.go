package model

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// UserClaims is the JWT payload for a candidate session.
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
