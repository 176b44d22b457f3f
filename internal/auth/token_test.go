package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/tourism-service/internal/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.Issue("a@x.com", domain.RoleTraveler)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > 61*time.Minute {
		t.Fatalf("expected roughly one hour of validity, got %v", until)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q", claims.Email)
	}
	if claims.Role != domain.RoleTraveler {
		t.Fatalf("expected traveler role claim, got %q", claims.Role)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := tm.Parse(signed); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("secret-one", 60)
	verifier := NewTokenManager("secret-two", 60)

	token, _, err := issuer.Issue("a@x.com", domain.RoleTraveler)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("expected wrong-key token to be rejected")
	}
}

func TestParseRejectsMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.Parse("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestParseRejectsUnexpectedSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := tm.Parse(signed); err == nil {
		t.Fatalf("expected none-algorithm token to be rejected")
	}
}
