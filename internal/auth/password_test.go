package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

// encodeHash builds a Django-format hash at a low iteration count so the
// tests stay fast.
func encodeHash(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2_sha256$%d$%s$%s", iterations, salt, base64.StdEncoding.EncodeToString(key))
}

func TestVerifyPassword(t *testing.T) {
	hash := encodeHash("hunter2", "somesalt", 1000)

	if !VerifyPassword("hunter2", hash) {
		t.Fatalf("correct password did not verify against %q", hash)
	}
	if VerifyPassword("hunter3", hash) {
		t.Fatal("wrong password verified")
	}
	if VerifyPassword("", hash) {
		t.Fatal("empty password verified")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	// Malformed or missing hashes are not a match, never a panic.
	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", encodeHashWithAlgorithm("bcrypt")},
		{"too few parts", "pbkdf2_sha256$1000$salt"},
		{"too many parts", "pbkdf2_sha256$1000$salt$aGFzaA==$extra"},
		{"non-numeric iterations", "pbkdf2_sha256$many$salt$aGFzaA=="},
		{"zero iterations", "pbkdf2_sha256$0$salt$aGFzaA=="},
		{"negative iterations", "pbkdf2_sha256$-1$salt$aGFzaA=="},
		{"empty salt", "pbkdf2_sha256$1000$$aGFzaA=="},
		{"bad base64", "pbkdf2_sha256$1000$salt$!!!"},
		{"empty key", "pbkdf2_sha256$1000$salt$"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifyPassword("hunter2", tc.hash) {
				t.Fatalf("malformed hash %q verified", tc.hash)
			}
		})
	}
}

func encodeHashWithAlgorithm(alg string) string {
	return strings.Replace(encodeHash("hunter2", "somesalt", 1000), "pbkdf2_sha256", alg, 1)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefix := fmt.Sprintf("pbkdf2_sha256$%d$", pbkdf2Iterations)
	if !strings.HasPrefix(hash, prefix) {
		t.Fatalf("hash %q does not start with %q", hash, prefix)
	}

	if !VerifyPassword("s3cret", hash) {
		t.Fatal("hashed password did not verify")
	}
	if VerifyPassword("other", hash) {
		t.Fatal("wrong password verified against fresh hash")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical, salt is not random")
	}
}
