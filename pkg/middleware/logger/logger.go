package logger

import (
	"context"
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path       string
	LogLevel   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	ServiceEnv ServiceEnv
}

var (
	mu     sync.RWMutex
	logger = otelzap.New(zap.NewNop())
	writer *lumberjack.Logger
)

// Init replaces the no-op default logger. Entries go to stdout and, when
// Path is set, to a rotated file.
func Init(conf *LogConfig) {
	level, err := zapcore.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encConf), zapcore.AddSync(os.Stdout), level),
	}

	var w *lumberjack.Logger
	if conf.Path != "" {
		w = &lumberjack.Logger{
			Filename:   conf.Path,
			MaxSize:    withDefault(conf.MaxSizeMB, 100),
			MaxBackups: withDefault(conf.MaxBackups, 5),
			MaxAge:     withDefault(conf.MaxAgeDays, 30),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(w), level))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2)).With(
		zap.String("platform", conf.ServiceEnv.Platform),
		zap.String("service", conf.ServiceEnv.Service),
		zap.String("env", conf.ServiceEnv.Env),
	)

	mu.Lock()
	defer mu.Unlock()
	logger = otelzap.New(zl, otelzap.WithMinLevel(level))
	writer = w
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	if writer != nil {
		_ = writer.Close()
		writer = nil
	}
}

func withDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

func sugar(ctx context.Context) otelzap.SugaredLoggerWithCtx {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sugar().Ctx(ctx)
}

func Debugf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	sugar(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Fatalf(format, args...)
}
