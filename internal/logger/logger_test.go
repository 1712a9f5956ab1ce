package logger_test

import (
	"errors"
	"net/http/httptest"
	"testing"
	"todoWeb/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, logger.Init(true))
	require.NoError(t, logger.Init(false))
	logger.Logger = zap.NewNop()
}

func TestHelpersWriteFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core)
	defer func() { logger.Logger = prev }()

	r := httptest.NewRequest("GET", "/tasks/dashboard?status=1", nil)
	logger.HttpRequestInfo(r, "HTTP_IN:")
	logger.Error("Repository: сбой", errors.New("boom"))
	logger.Warn("предупреждение")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "/tasks/dashboard", entries[0].ContextMap()["path"])
	assert.Equal(t, "status=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}
