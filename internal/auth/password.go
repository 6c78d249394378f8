package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the bcrypt work factor for newly hashed passwords.
const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of password. The digest differs
// between calls for the same input; use CheckPassword to verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
