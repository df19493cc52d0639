package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Claims do token usado nos endpoints operacionais
type Claims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
