// Package auth implements the static allow-listed API key check. The key
// set is loaded once at startup and never mutated afterwards.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// KeySet is an immutable set of valid credential tokens.
type KeySet struct {
	keys []string
}

// NewKeySet parses a comma-separated list of tokens. Blank entries are
// dropped.
func NewKeySet(raw string) *KeySet {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return &KeySet{keys: keys}
}

// Len returns the number of configured keys.
func (s *KeySet) Len() int {
	return len(s.keys)
}

// Valid reports whether token is in the set. Every key is compared in
// constant time so the scan cost does not leak which prefix matched.
func (s *KeySet) Valid(token string) bool {
	if token == "" {
		return false
	}
	ok := false
	for _, k := range s.keys {
		if len(k) == len(token) && subtle.ConstantTimeCompare([]byte(k), []byte(token)) == 1 {
			ok = true
		}
	}
	return ok
}

// Middleware enforces an Authorization header of the form
// "Bearer <token>" or "ApiKey <token>" on every route it wraps.
func Middleware(keys *KeySet) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := parseAuthHeader(c.GetHeader("Authorization"))
		if !ok || !keys.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func parseAuthHeader(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch parts[0] {
	case "Bearer", "ApiKey":
		return parts[1], true
	}
	return "", false
}
