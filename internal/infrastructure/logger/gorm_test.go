package logger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func stmt() (string, int64) { return "DELETE FROM products WHERE id = $1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, WithSlowThreshold(50*time.Millisecond))
	ctx := context.Background()

	gl.Trace(ctx, time.Now(), stmt, nil)
	gl.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	gl.Trace(ctx, time.Now(), stmt, errors.New("syntax error"))
	gl.Trace(ctx, time.Now(), stmt, gormlogger.ErrRecordNotFound)
	gl.Trace(ctx, time.Now(), stmt, fmt.Errorf("delete: %w", gorm.ErrForeignKeyViolated))

	entries := recorded.All()
	require.Len(t, entries, 4)

	assert.Equal(t, "sql", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "DELETE FROM products WHERE id = $1", entries[0].ContextMap()["sql"])

	assert.Equal(t, "slow sql", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)

	assert.Equal(t, "sql failed", entries[2].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	assert.Equal(t, "sql constraint violated", entries[3].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestGormLogger_LevelGating(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Error)
	ctx := context.Background()

	gl.Trace(ctx, time.Now(), stmt, nil)
	gl.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	gl.Trace(ctx, time.Now(), stmt, gorm.ErrDuplicatedKey)
	gl.Trace(ctx, time.Now(), stmt, errors.New("boom"))
	gl.Warn(ctx, "ignored %d", 1)
	gl.Error(ctx, "kept %d", 2)

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "sql failed", entries[0].Message)
	assert.Equal(t, "kept 2", entries[1].Message)
}

func TestGormLogger_Silent(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info).LogMode(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), stmt, errors.New("x"))
	gl.Info(context.Background(), "x")
	assert.Equal(t, 0, recorded.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
}
