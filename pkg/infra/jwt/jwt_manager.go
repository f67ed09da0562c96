package jwt

import (
	"errors"
	"time"

	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// IdentityClaim is the verified assertion of who is calling, derived purely
// from the session token. It is never persisted.
type IdentityClaim struct {
	UserID       string
	Email        string
	Role         string
	IsAuthorized bool
}

type SessionClaims struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsAuthorized bool   `json:"isAuthorized"`
	jwt.RegisteredClaims
}

//go:generate mockery --name=Manager --dir=. --output=mocks/ --filename=jwt_manager_mock.go --case=underscore --with-expecter
type (
	Manager interface {
		CreateToken(userID, email, role string, authorized bool) (string, error)
		// DecodeToken validates signature and expiry, returning the identity
		// claim. Any decode failure yields an error, never a partial claim.
		DecodeToken(tokenString string) (*IdentityClaim, error)
	}
	manager struct {
		config *config.ServerConfig
	}
)

func NewJwtManager(config *config.ServerConfig) Manager {
	return &manager{
		config: config,
	}
}

func (m *manager) CreateToken(userID, email, role string, authorized bool) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email:        email,
		Role:         role,
		IsAuthorized: authorized,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (m *manager) DecodeToken(tokenString string) (*IdentityClaim, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &IdentityClaim{
		UserID:       claims.Subject,
		Email:        claims.Email,
		Role:         claims.Role,
		IsAuthorized: claims.IsAuthorized,
	}, nil
}
