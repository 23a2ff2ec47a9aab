package auth

import "golang.org/x/crypto/bcrypt"

// passwordCost is the fixed bcrypt work factor for stored credentials.
const passwordCost = 10

// HashPassword hashes a plaintext password with a per-call random salt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether plaintext re-hashes to the stored hash.
// A mismatch is a normal outcome, not an error.
func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
