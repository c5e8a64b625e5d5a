package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken : в БД хранится только sha256 от refresh токена
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TokenHashEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
