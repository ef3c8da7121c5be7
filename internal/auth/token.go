package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jannysd28/technohu/internal/models"
)

const tokenLifetime = 72 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues an HS256 bearer token carrying the actor identity.
func GenerateToken(u models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies a bearer token and returns the actor id and role.
func ParseToken(tokenStr string) (int64, models.Role, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	// JSON numbers decode as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	rawRole, _ := claims["role"].(string)
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return 0, "", errors.New("invalid token claims")
	}
	return int64(rawID), role, nil
}
