package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/SARVESHVARADKAR123/picshare/internal/domain"
)

const bcryptCost = 12

// HashPassword hashes pw with bcrypt. Passwords longer than bcrypt's 72-byte
// input limit are rejected with domain.ErrPasswordTooLong.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrPasswordTooLong
	}
	return string(b), err
}

func ComparePassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
