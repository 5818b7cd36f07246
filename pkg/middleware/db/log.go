package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(conf LogConf) gormlogger.Interface {
	l := &gormLogger{level: gormlogger.Warn, slowThreshold: conf.SlowThreshold}
	switch conf.Level {
	case "debug":
		l.level = gormlogger.Info
	case "error":
		l.level = gormlogger.Error
	case "silent":
		l.level = gormlogger.Silent
	}
	if l.slowThreshold == 0 {
		l.slowThreshold = 500 * time.Millisecond
	}
	return l
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		logger.Infof(ctx, msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		logger.Warnf(ctx, msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		logger.Errorf(ctx, msg, args...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Errorf(ctx, "sql err: %v [%s] rows: %d %s", err, elapsed, rows, sql)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warnf(ctx, "slow sql [%s] rows: %d %s", elapsed, rows, sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Debugf(ctx, "[%s] rows: %d %s", elapsed, rows, sql)
	}
}
