// Package cache memoizes translation results keyed by text content and
// language pair.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Cache stores translated text. Get returns false on a miss or an
// expired entry.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Key builds a cache key from the text content and the translation
// coordinates. The text itself is hashed so keys stay bounded.
func Key(text, provider, sourceLang, targetLang string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(hash[:]) + ":" + provider + ":" + sourceLang + ":" + targetLang
}
