package utils

import (
	"errors"
	"time"

	"powerup/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "powerup-dev-secret"

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(devSecret)
}

// GenerateToken creates a signed JWT token for the given identity.
// The token expires after the specified duration.
func GenerateToken(id Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"role":  id.Role,
		"email": id.Email,
		"name":  id.Name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIdentity validates the token and returns its subject and role.
func ExtractIdentity(tokenString string) (*Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &Identity{UserID: sub, Role: role, Email: email, Name: name}, nil
}
