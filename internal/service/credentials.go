package service

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier скрывает способ хранения и сравнения паролей.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
	Encode(password string) (string, error)
}

// PlaintextVerifier хранит пароль как есть и сравнивает строки точно, с учётом регистра.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func (PlaintextVerifier) Encode(password string) (string, error) {
	return password, nil
}

type BcryptVerifier struct {
	Cost int
}

func NewBcryptVerifier(cost int) BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptVerifier{Cost: cost}
}

// Verify принимает и старые записи в открытом виде (например, засеянного администратора).
func (v BcryptVerifier) Verify(stored, supplied string) bool {
	if !isBcryptHash(stored) {
		return PlaintextVerifier{}.Verify(stored, supplied)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

func (v BcryptVerifier) Encode(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
