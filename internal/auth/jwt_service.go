package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"aerosafe/internal/model"
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned when a token fails signature or shape checks.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the structured fields embedded in an auth token.
// Subject carries the account id.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	UID   string     `json:"uid"`
	Name  string     `json:"name"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed, time-limited tokens.
type JWTService struct {
	secret   []byte
	validity time.Duration
}

// NewJWTService creates a new JWT service with the given secret and validity window.
func NewJWTService(secret string, validity time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Issue generates a signed token embedding the account's identity and role.
func (s *JWTService) Issue(account *model.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: account.Email,
		Role:  account.Role,
		UID:   account.UID,
		Name:  account.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token's signature and expiry and returns its claims.
// Tokens signed with a non-HMAC method are rejected outright.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
