package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashInput returns the SHA-256 hex digest of input. Used for token and
// refresh-serial fingerprints stored in the database; not for passwords.
func HashInput(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// NewSecureSerial returns a cryptographically secure serial, a v4 UUID with
// the dashes stripped. Used for refresh-token serials and user serial numbers.
func NewSecureSerial() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewJti returns a cryptographically secure JWT id.
func NewJti() string {
	return uuid.NewString()
}
