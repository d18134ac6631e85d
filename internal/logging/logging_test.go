package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"academy-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesDailyFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(config.LogConfig{Level: "debug", Dir: dir, JSON: true})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	path := filepath.Join(dir, "log_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}
