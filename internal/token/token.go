package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velmart/storefront/internal/models"
)

// TTL is how long an issued token stays valid. The admin flag is baked in
// at issue time and is not re-checked against the database afterwards.
const TTL = 48 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified payload of a bearer token.
type Claims struct {
	UserID  uint
	IsAdmin bool
}

type Service struct {
	Secret []byte
}

func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"isAdmin": user.IsAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

func (s *Service) Parse(raw string) (*Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	isAdmin, _ := mc["isAdmin"].(bool)

	return &Claims{UserID: uint(sub), IsAdmin: isAdmin}, nil
}
