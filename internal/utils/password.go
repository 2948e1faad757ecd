package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash for storage. A cost outside
// bcrypt's supported range falls back to the library default, so a
// misconfigured BCRYPT_COST can never silently weaken new hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plaintext matches the stored
// hash. The comparison is constant-time inside bcrypt.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
