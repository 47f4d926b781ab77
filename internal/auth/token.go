package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	UserTypeCustomer = "customer"
	UserTypeStaff    = "staff"
)

// Claims is the payload carried by an access token. The claim names on
// the wire (user_name, display_name, user_type) are shared with the
// existing client service, which signs with the same secret.
type Claims struct {
	UserName    string
	DisplayName string
	UserType    string
}

// TokenCodec signs and verifies HS256 bearer tokens. The signing key is
// explicit constructor input; there is no package-level state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. A zero ttl issues tokens without an exp
// claim; Decode then accepts them regardless of age, which matches the
// tokens the client service already has in the wild.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

func (c *TokenCodec) Issue(claims Claims) (string, error) {
	payload := jwt.MapClaims{
		"user_name":    claims.UserName,
		"display_name": claims.DisplayName,
		"user_type":    claims.UserType,
	}
	if c.ttl > 0 {
		payload["exp"] = jwt.NewNumericDate(time.Now().Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and extracts the claims. Any failure mode
// (bad signature, wrong algorithm, malformed structure, expired when an
// exp claim is present, missing required claims) collapses into
// ErrInvalidToken so callers cannot distinguish which check failed.
func (c *TokenCodec) Decode(tokenString string) (Claims, error) {
	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userName, _ := payload["user_name"].(string)
	userType, _ := payload["user_type"].(string)
	if userName == "" || userType == "" {
		return Claims{}, ErrInvalidToken
	}

	displayName, _ := payload["display_name"].(string)
	if displayName == "" {
		displayName = userName
	}

	return Claims{
		UserName:    userName,
		DisplayName: displayName,
		UserType:    userType,
	}, nil
}
