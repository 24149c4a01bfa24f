package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ServiceIssuer  = "survey-dashboard"
	ServiceSubject = "presentation"
	// Token hanya untuk satu request, jadi masa berlakunya pendek
	serviceTokenTTL = 2 * time.Minute
)

// GenerateServiceToken membuat bearer token HS256 yang dikirim ke backend
// supaya backend tahu request datang dari dashboard. jti = request id.
func GenerateServiceToken(secret, requestID string) (string, error) {
	if secret == "" {
		return "", errors.New("service secret is empty")
	}
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    ServiceIssuer,
		Subject:   ServiceSubject,
		ID:        requestID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(serviceTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateServiceToken adalah kebalikan GenerateServiceToken, dipakai backend
// (dan test) untuk memeriksa token.
func ValidateServiceToken(tokenString, secret string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ServiceIssuer),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid service token")
	}
	return claims, nil
}
