// Package identity validates session tokens minted by the external identity
// provider. The service never issues tokens; it only extracts the opaque uid
// a token is bound to, for dashboard clients that authenticate with a Bearer
// token instead of embedding a raw uid in the request body.
package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrDisabled     = errors.New("token validation disabled")
)

type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
}

// NewService with an empty secret disables token resolution; callers then
// must supply an explicit uid.
func NewService(secretKey string) *Service {
	return &Service{secretKey: []byte(secretKey)}
}

func (s *Service) Enabled() bool {
	return len(s.secretKey) > 0
}

// ResolveUID validates tokenString and returns the uid it is bound to.
func (s *Service) ResolveUID(tokenString string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" {
		return "", ErrInvalidToken
	}
	return claims.UID, nil
}
