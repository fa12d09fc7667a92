package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenValidity is how long an access token stays usable.
	AccessTokenValidity = 24 * time.Hour
	// RefreshTokenValidity is how long a refresh token stays usable.
	RefreshTokenValidity = 7 * 24 * time.Hour
)

// GenerateTokenPair returns an access token and a refresh token for the user.
func GenerateTokenPair(email, secret, role string, id uint) (string, string, error) {
	accessClaims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
		"iat":   time.Now().Unix(),
	}
	accessToken, err := signClaims(accessClaims, secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":      id,
		"exp":     time.Now().Add(RefreshTokenValidity).Unix(),
		"refresh": true,
	}
	refreshToken, err := signClaims(refreshClaims, secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims checks the token signature and expiry and returns the claims.
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func signClaims(claims jwt.MapClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
