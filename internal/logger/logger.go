package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"os"
)

var log *zap.Logger

// Init 初始化全局 logger：生产环境 JSON、其余环境开发格式。
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log = l
}

// Sync 刷新缓冲区，进程退出前调用。
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// L 返回全局 logger；未初始化时退化为 Nop，方便测试。
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func Info(msg string, fields ...zapcore.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { L().Error(msg, fields...) }
func Fatal(msg string, fields ...zapcore.Field) { L().Fatal(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { L().Debug(msg, fields...) }
