package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a spectator's password. The cost comes from
// BCRYPT_COST so tests can run at bcrypt.MinCost while production pays for
// a real work factor.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plain password matches the stored
// hash. The comparison is constant-time; callers fold a false result into
// the same generic message as an unknown username.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
