package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("Success: Defaults to info on stderr", func(t *testing.T) {
		require.NoError(t, Init(Config{}))
		assert.Equal(t, log.InfoLevel, Logger.GetLevel())
	})

	t.Run("Success: Writes to rotating file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "logs", "habitflow.log")

		require.NoError(t, Init(Config{Level: "debug", File: file}))
		Info("habit toggled", "habit_id", "h-1")

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "habit toggled")
		assert.Contains(t, string(data), "h-1")
	})

	t.Run("Fail: Unknown level", func(t *testing.T) {
		err := Init(Config{Level: "verbose"})
		assert.Error(t, err)
	})
}
