package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored credentials come from the Django side of the shared database and
// use its PBKDF2 encoding: "pbkdf2_sha256$<iterations>$<salt>$<b64 key>".
// Verification must stay bit-exact with that format.

const (
	pbkdf2Algorithm  = "pbkdf2_sha256"
	pbkdf2Iterations = 600000
	saltLength       = 16
)

// VerifyPassword checks a plaintext password against a stored Django
// hash. It never fails hard: an empty, truncated, or otherwise malformed
// hash is simply not a match.
func VerifyPassword(password, encodedHash string) bool {
	if encodedHash == "" {
		return false
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 4 {
		return false
	}
	if parts[0] != pbkdf2Algorithm {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt := parts[2]
	if salt == "" {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// HashPassword produces a hash in the same Django encoding, so accounts
// seeded by dbtool verify through either system.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("hash password: generate salt: %w", err)
	}
	// The salt is stored as text inside the $-delimited encoding, so it
	// must stay free of the separator itself.
	salt := base64.RawStdEncoding.EncodeToString(raw)

	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, sha256.Size, sha256.New)
	encoded := fmt.Sprintf(
		"%s$%d$%s$%s",
		pbkdf2Algorithm, pbkdf2Iterations, salt, base64.StdEncoding.EncodeToString(key),
	)
	return encoded, nil
}
