package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleSupplier Role = "supplier"
	RoleDriver   Role = "driver"
)

type JWTCustomClaims struct {
	SubjectID string `json:"subject_id"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, subjectID string, role Role) (string, error) {
	claims := &JWTCustomClaims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
