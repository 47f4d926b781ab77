package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 0)

	in := Claims{
		UserName:    "acme_user",
		DisplayName: "ACME Logistics",
		UserType:    UserTypeCustomer,
	}

	token, err := codec.Issue(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("claims = %+v, want %+v", out, in)
	}
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenCodec("key-one", 0)
	verifier := NewTokenCodec("key-two", 0)

	token, err := issuer.Issue(Claims{UserName: "u", UserType: UserTypeStaff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.Decode(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("decode with wrong key: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret", 0)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.Decode(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("decode(%q): err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestTokenMissingClaims(t *testing.T) {
	secret := "unit-test-secret"
	codec := NewTokenCodec(secret, 0)

	sign := func(t *testing.T, payload jwt.MapClaims) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return signed
	}

	missingType := sign(t, jwt.MapClaims{"user_name": "u"})
	if _, err := codec.Decode(missingType); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("decode without user_type: err = %v, want ErrInvalidToken", err)
	}

	missingName := sign(t, jwt.MapClaims{"user_type": UserTypeCustomer})
	if _, err := codec.Decode(missingName); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("decode without user_name: err = %v, want ErrInvalidToken", err)
	}

	// display_name is a convenience claim and falls back to user_name.
	noDisplay := sign(t, jwt.MapClaims{"user_name": "u", "user_type": UserTypeStaff})
	claims, err := codec.Decode(noDisplay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.DisplayName != "u" {
		t.Fatalf("display name = %q, want fallback to user_name", claims.DisplayName)
	}
}

func TestTokenNoExpiryByDefault(t *testing.T) {
	secret := "unit-test-secret"
	codec := NewTokenCodec(secret, 0)

	// A token minted long ago with the no-expiry configuration must still
	// decode; the existing client service issued such tokens.
	old, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_name": "u",
		"user_type": UserTypeCustomer,
		"iat":       jwt.NewNumericDate(time.Now().Add(-365 * 24 * time.Hour)),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := codec.Decode(old); err != nil {
		t.Fatalf("year-old token without exp rejected: %v", err)
	}
}

func TestTokenExpiryWhenConfigured(t *testing.T) {
	secret := "unit-test-secret"
	codec := NewTokenCodec(secret, time.Hour)

	token, err := codec.Issue(Claims{UserName: "u", UserType: UserTypeStaff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := codec.Decode(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_name": "u",
		"user_type": UserTypeStaff,
		"exp":       jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := codec.Decode(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: err = %v, want ErrInvalidToken", err)
	}
}
