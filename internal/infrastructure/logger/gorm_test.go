package logger

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
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func selectCarts() (string, int64) {
	return "SELECT * FROM carts WHERE user_id = ?", 1
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Warn)

	verbose := gormLog.LogMode(gormlogger.Info)
	require.IsType(t, &GormLogger{}, verbose)
	assert.Equal(t, gormlogger.Info, verbose.(*GormLogger).logLevel)

	// The original keeps its level; LogMode hands back a copy
	assert.Equal(t, gormlogger.Warn, gormLog.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("silent level logs nothing", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Silent)

		gormLog.Trace(context.Background(), time.Now(), selectCarts, errors.New("broken"))
		assert.Zero(t, recorded.Len())
	})

	t.Run("statement error logs query failed", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), selectCarts, errors.New("connection reset"))

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "query failed", entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, "SELECT * FROM carts WHERE user_id = ?", fields["sql"])
		assert.EqualValues(t, 1, fields["rows"])
		assert.Equal(t, "connection reset", fields["error"])
	})

	t.Run("record not found stays quiet", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error)

		gormLog.Trace(context.Background(), time.Now(), selectCarts, gormlogger.ErrRecordNotFound)
		assert.Zero(t, recorded.Len())
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)

		began := time.Now().Add(-2 * slowQueryThreshold)
		gormLog.Trace(context.Background(), began, selectCarts, nil)

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
		assert.Equal(t, "slow query", entry.Message)
	})

	t.Run("fast query logs at debug when level is info", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)

		gormLog.Trace(context.Background(), time.Now(), selectCarts, nil)

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		assert.Equal(t, "query", entry.Message)
	})

	t.Run("fast query suppressed at warn level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)

		gormLog.Trace(context.Background(), time.Now(), selectCarts, nil)
		assert.Zero(t, recorded.Len())
	})

	t.Run("carries the request id from the context", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Error)

		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-77")
		gormLog.Trace(ctx, time.Now(), selectCarts, errors.New("deadlock detected"))

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "req-77", recorded.All()[0].ContextMap()["request_id"])
	})
}

func TestGormLogger_LeveledMessages(t *testing.T) {
	t.Run("info passes at info level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Info)

		gormLog.Info(context.Background(), "migrating %s", "orders")
		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "migrating orders", recorded.All()[0].Message)
	})

	t.Run("info suppressed at warn level", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)

		gormLog.Info(context.Background(), "migrating %s", "orders")
		assert.Zero(t, recorded.Len())
	})

	t.Run("warn and error pass at their levels", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(gormlogger.Warn)

		gormLog.Warn(context.Background(), "pool nearly exhausted")
		gormLog.Error(context.Background(), "bad connection")

		require.Equal(t, 2, recorded.Len())
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, recorded.All()[1].Level)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
		{"anything", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGormLogLevel(tt.input))
		})
	}
}
