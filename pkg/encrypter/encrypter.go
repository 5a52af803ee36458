package encrypter

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
)

var ErrEmptyPassword = errors.New("password is empty")

// Encrypter hashes and verifies user passwords.
type Encrypter interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) (bool, error)
}

type implEncrypter struct {
	params *argon2id.Params
}

// New returns an argon2id Encrypter. A nil params uses argon2id.DefaultParams.
func New(params *argon2id.Params) Encrypter {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return implEncrypter{params: params}
}

func (e implEncrypter) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := argon2id.CreateHash(password, e.params)
	if err != nil {
		return "", fmt.Errorf("encrypter.HashPassword: %w", err)
	}
	return hash, nil
}

func (e implEncrypter) ComparePassword(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("encrypter.ComparePassword: %w", err)
	}
	return match, nil
}
