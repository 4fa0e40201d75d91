package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicplace/console/internal/domain/marketplace"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a marketplace access token. Older tokens carry the
// role as "userType" instead of "user_type".
type Claims struct {
	UserID       int64                `json:"id"`
	Name         string               `json:"name"`
	UserType     marketplace.UserType `json:"user_type,omitempty"`
	LegacyType   marketplace.UserType `json:"userType,omitempty"`
	jwt.RegisteredClaims
}

// Role returns the account role, preferring the current claim name.
func (c *Claims) Role() marketplace.UserType {
	if c.UserType != "" {
		return c.UserType
	}
	return c.LegacyType
}

// Viewer converts the claims into the viewer the screens render for.
func (c *Claims) Viewer() marketplace.Viewer {
	return marketplace.Viewer{
		ID:       c.UserID,
		Name:     c.Name,
		UserType: c.Role(),
	}
}

// JWTService verifies tokens issued by the marketplace API. The console
// shares the API's HMAC secret; it never issues tokens to browsers.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || !claims.Role().IsValid() {
		return nil, fmt.Errorf("%w: missing id or user type", ErrInvalidToken)
	}
	return claims, nil
}

// Sign mints a short-lived token for viewer. The check command uses it when
// no service token is configured.
func (s *JWTService) Sign(viewer marketplace.Viewer, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := &Claims{
		UserID:   viewer.ID,
		Name:     viewer.Name,
		UserType: viewer.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
