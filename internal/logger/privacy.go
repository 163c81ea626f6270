package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

var hashSalt = "default-salt-change-in-production"

// InitHashSalt loads the log hash salt from LOG_HASH_SALT. Call once at
// startup, before anything logs a chat hash.
func InitHashSalt() {
	if salt := os.Getenv("LOG_HASH_SALT"); salt != "" {
		hashSalt = salt
	}
}

// HashChatID creates a privacy-preserving hash of a chat ID so user
// activity can be correlated in logs without exposing the raw ID.
func HashChatID(chatID int64) string {
	data := fmt.Sprintf("%d:%s", chatID, hashSalt)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:8]
}
