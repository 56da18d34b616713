package configs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormLogger "gorm.io/gorm/logger"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CA_INT", "42")
	t.Setenv("CA_BAD_INT", "x")
	t.Setenv("CA_DUR", "90s")
	t.Setenv("CA_DUR_SECS", "30")
	t.Setenv("CA_LIST", " a, ,b ")

	assert.Equal(t, "fallback", GetEnv("CA_MISSING", "fallback"))
	assert.Equal(t, 42, GetEnvInt("CA_INT", 1))
	assert.Equal(t, 7, GetEnvInt("CA_BAD_INT", 7))
	assert.Equal(t, 90*time.Second, GetEnvDuration("CA_DUR", time.Minute))
	assert.Equal(t, 30*time.Second, GetEnvDuration("CA_DUR_SECS", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("CA_MISSING", time.Minute))
	assert.Equal(t, []string{"a", "b"}, GetEnvList("CA_LIST", ""))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = NewLogger("development", "nonsense")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core))

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 2", 1 }, nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "query failed", logs.All()[0].Message)
	assert.Equal(t, "slow query", logs.All()[1].Message)

	silent := gl.LogMode(gormLogger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 3", 0 }, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}
