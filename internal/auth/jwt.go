package auth

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// Claims is the token payload issued by the association's login service.
// Older tokens carry a single userType instead of the userTypes list.
type Claims struct {
	UserID       int64    `json:"id"`
	Benutzername string   `json:"benutzername,omitempty"`
	Username     string   `json:"username,omitempty"`
	UserTypes    []string `json:"userTypes,omitempty"`
	UserType     string   `json:"userType,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() models.Actor {
	name := c.Benutzername
	if name == "" {
		name = c.Username
	}

	roles := make([]string, 0, len(c.UserTypes)+1)
	roles = append(roles, c.UserTypes...)
	if c.UserType != "" {
		roles = append(roles, c.UserType)
	}

	return models.Actor{
		ID:       c.UserID,
		Username: name,
		Roles:    roles,
	}
}

type JWTManager struct {
	secret []byte
	expiry time.Duration
	issuer string
}

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

func NewJWTManager(secret string, expiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

func (m *JWTManager) Generate(actor models.Actor) (string, error) {
	if actor.Username == "" {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims := &Claims{
		UserID:       actor.ID,
		Benutzername: actor.Username,
		UserTypes:    actor.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate checks signature and expiry. The issuer is not enforced since
// tokens minted by the login service carry none.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}
