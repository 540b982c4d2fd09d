package utils

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var legacyDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares password against a stored hash.
//
// Stored values are bcrypt hashes, or the unsalted MD5 hex digests of rows
// imported from the old admin. legacy reports the latter so the caller can
// rehash on a successful login.
func VerifyPassword(stored, password string) (ok bool, legacy bool, err error) {
	if legacyDigest.MatchString(stored) {
		sum := md5.Sum([]byte(password))
		got := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(got), []byte(stored)) == 1, true, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	switch {
	case err == nil:
		return true, false, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, false, nil
	default:
		return false, false, err
	}
}
