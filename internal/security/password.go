package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iters  = 120_000
	pbkdf2KeyLen = 32
)

// GenerateSalt returns a fresh random per-record salt, base64url encoded.
func GenerateSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashPassword derives a PBKDF2 key from the password and the stored salt.
// The salt lives next to the hash on the doctor record; verification recomputes
// the derivation with the same salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iters, pbkdf2KeyLen, sha256.New)
	return base64.RawURLEncoding.EncodeToString(key)
}

func CheckPassword(hash, salt, password string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(candidate)) == 1
}
