package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// AccessClaims carries the identity the upstream auth service signed into the token.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func ParseJWT(tokenString, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
