package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const minLength = 8

func Hash(plain string) (string, error) {
	if len(plain) < minLength {
		return "", errors.New("password too short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
