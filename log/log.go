package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = newDefault()

func newDefault() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lg, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		lg = zap.NewNop()
	}
	return lg
}

// 替换默认logger，便于接入外部服务的日志配置
func SetLogger(lg *zap.Logger) {
	if lg != nil {
		logger = lg
	}
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Sync() {
	_ = logger.Sync()
}
