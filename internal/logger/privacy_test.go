package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashChatID(t *testing.T) {
	t.Run("is deterministic and short", func(t *testing.T) {
		a := HashChatID(12345)
		b := HashChatID(12345)
		require.Equal(t, a, b)
		require.Len(t, a, 8)
	})

	t.Run("different IDs hash differently", func(t *testing.T) {
		require.NotEqual(t, HashChatID(1), HashChatID(2))
	})

	t.Run("salt changes the hash", func(t *testing.T) {
		before := HashChatID(12345)
		t.Setenv("LOG_HASH_SALT", "another-salt")
		InitHashSalt()
		t.Cleanup(func() { hashSalt = "default-salt-change-in-production" })
		require.NotEqual(t, before, HashChatID(12345))
	})
}
