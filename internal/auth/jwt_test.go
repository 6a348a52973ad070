package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func TestJWTGenerateValidate(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "vereinsapi")
	token, err := manager.Generate(models.Actor{ID: 7, Username: "anna", Roles: []string{"vorstand"}})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	actor := claims.Actor()
	if actor.ID != 7 || actor.Username != "anna" || !actor.HasAnyRole("vorstand") {
		t.Fatalf("unexpected actor: %#v", actor)
	}
}

func TestJWTGenerateInvalid(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "vereinsapi")
	if _, err := manager.Generate(models.Actor{}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestJWTValidateMissing(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "vereinsapi")
	if _, err := manager.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestJWTValidateWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret", time.Hour, "vereinsapi")
	token, err := issuer.Generate(models.Actor{ID: 1, Username: "anna"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	verifier := NewJWTManager("other-secret", time.Hour, "vereinsapi")
	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestJWTValidateExpired(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute, "vereinsapi")
	token, err := manager.Generate(models.Actor{ID: 1, Username: "anna"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestClaimsFromLoginService(t *testing.T) {
	// Shape of the tokens issued by the login service: username key and a
	// legacy single userType.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       12,
		"username": "bruno",
		"userType": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := NewJWTManager("secret", time.Hour, "").Validate(signed)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	actor := claims.Actor()
	if actor.ID != 12 || actor.Username != "bruno" || !actor.HasAnyRole(models.PrivilegedRoles...) {
		t.Fatalf("unexpected actor: %#v", actor)
	}
}

func TestTokenFromHeader(t *testing.T) {
	if _, err := TokenFromHeader("nope"); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if _, err := TokenFromHeader(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if token, err := TokenFromHeader("Bearer token"); err != nil || token != "token" {
		t.Fatalf("expected token, got %s err %v", token, err)
	}
}
