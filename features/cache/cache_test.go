package cache

import (
	"testing"
	"time"

	"phishdetect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cache is a process-wide singleton, so the lifecycle runs as ordered
// subtests over one initialized instance.
func TestVerdictCacheLifecycle(t *testing.T) {
	ctx, err := utils.Initialize(t)
	require.NoError(t, err)

	require.NoError(t, InitializeCache(ctx))
	require.True(t, Ready())

	t.Run("miss before any write", func(t *testing.T) {
		_, err := GetVerdict("https://never-scored.example")
		assert.ErrorIs(t, err, ErrVerdictNotFound)
	})

	t.Run("bloom gates unknown keys", func(t *testing.T) {
		likely, err := MightContain("https://never-scored.example")
		require.NoError(t, err)
		assert.False(t, likely)
	})

	t.Run("submitted verdict becomes readable", func(t *testing.T) {
		SubmitVerdict("https://scored.example/login", "phishing", 0.91)

		assert.Eventually(t, func() bool {
			v, err := GetVerdict("https://scored.example/login")
			return err == nil && v.Status == "phishing" && v.Probability == 0.91
		}, 2*time.Second, 10*time.Millisecond, "async writer should land the verdict")
	})

	t.Run("sweep keeps live entries", func(t *testing.T) {
		Sweep()

		v, err := GetVerdict("https://scored.example/login")
		require.NoError(t, err)
		assert.Equal(t, "phishing", v.Status)
	})

	t.Run("close flushes and tears down", func(t *testing.T) {
		require.NoError(t, Close())
		assert.False(t, Ready())
	})
}
