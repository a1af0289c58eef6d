package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/VedoCalc/internal/model"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApplyEnv_FromFile(t *testing.T) {
	path := writeEnvFile(t, "FORM_CAPACITY_1=12\nCUTOFF_TYPE_2=19\nSTORAGE_PATH=/data/out\nMAX_FILE_SIZE=1024\nOWNER=shop\n")

	cfg, err := ApplyEnv(model.DefaultAppConfig(), path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.FormCapacity1)
	assert.Equal(t, 19, cfg.CutoffType2)
	assert.Equal(t, "/data/out", cfg.StoragePath)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, "shop", cfg.Owner)
	assert.Equal(t, 20, cfg.FormCapacity2, "unset variables keep their value")
}

func TestApplyEnv_ProcessEnvWins(t *testing.T) {
	path := writeEnvFile(t, "FORM_CAPACITY_3=7\n")
	t.Setenv("FORM_CAPACITY_3", "9")

	cfg, err := ApplyEnv(model.DefaultAppConfig(), path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.FormCapacity3)
}

func TestApplyEnv_MissingFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := ApplyEnv(model.DefaultAppConfig(), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyEnv_NonInteger(t *testing.T) {
	t.Setenv("CUTOFF_TYPE_1", "eight")

	_, err := ApplyEnv(model.DefaultAppConfig(), "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "CUTOFF_TYPE_1"), "error should name the variable: %v", err)
}

func TestApplyEnv_InvalidMaxFileSize(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "20MB")

	_, err := ApplyEnv(model.DefaultAppConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_FILE_SIZE")
}
