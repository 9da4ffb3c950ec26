package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger routes GORM statement traces into zap.
//
// Constraint violations (foreign key, unique key) are logged at info level
// because the store maps them to rejections rather than failures. Record not
// found is dropped entirely.
type GormLogger struct {
	base      *zap.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold flags statements slower than d; zero disables the check
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowQuery = d }
}

// NewGormLogger returns a GORM logger writing to zapLogger at the given level
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{base: zapLogger.Named("sql"), level: level, slowQuery: defaultSlowQuery}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < min {
		return
	}
	Ctx(ctx, l.base).Sugar().Logf(lvl, msg, data...)
}

// Trace is called by GORM once per executed statement
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	lvl, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	log := Ctx(ctx, l.base)
	if ce := log.Check(lvl, msg); ce != nil {
		stmt, rows := fc()
		fields := []zap.Field{
			zap.String("sql", stmt),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		ce.Write(fields...)
	}
}

// classify picks the level and message for a statement outcome. ok is false
// when nothing should be logged at the configured GORM level.
func (l *GormLogger) classify(elapsed time.Duration, err error) (zapcore.Level, string, bool) {
	switch {
	case errors.Is(err, gormlogger.ErrRecordNotFound):
		return 0, "", false
	case isConstraintViolation(err):
		return zapcore.InfoLevel, "sql constraint violated", l.level >= gormlogger.Warn
	case err != nil:
		return zapcore.ErrorLevel, "sql failed", l.level >= gormlogger.Error
	case l.slowQuery > 0 && elapsed > l.slowQuery:
		return zapcore.WarnLevel, "slow sql", l.level >= gormlogger.Warn
	default:
		return zapcore.DebugLevel, "sql", l.level >= gormlogger.Info
	}
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// MapGormLogLevel maps the application log level to a GORM log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
