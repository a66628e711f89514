package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
}

type Logger struct {
	logger *zap.Logger
}

var _ Interface = (*Logger)(nil)

func New(level string) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		parseLevel(level),
	)

	return &Logger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
	}
}

func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

func newFromZap(l *zap.Logger) *Logger {
	return &Logger{logger: l}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.log(zapcore.DebugLevel, message, args...)
}

func (l *Logger) Info(message string, args ...interface{}) {
	l.log(zapcore.InfoLevel, message, args...)
}

func (l *Logger) Warn(message string, args ...interface{}) {
	l.log(zapcore.WarnLevel, message, args...)
}

func (l *Logger) Error(message interface{}, args ...interface{}) {
	l.log(zapcore.ErrorLevel, message, args...)
}

func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	// zap сам завершает процесс после записи
	l.log(zapcore.FatalLevel, message, args...)
}

func (l *Logger) log(level zapcore.Level, message interface{}, args ...interface{}) {
	if !l.logger.Core().Enabled(level) {
		return
	}

	l.logger.Log(level, format(message, args...))
}

// format: для error первый аргумент - контекст вызова ("Type - Method - callee"),
// для строки - printf-формат.
func format(message interface{}, args ...interface{}) string {
	switch msg := message.(type) {
	case error:
		if len(args) == 0 {
			return msg.Error()
		}
		where, ok := args[0].(string)
		if !ok {
			return fmt.Sprintf("%v: %s", args[0], msg.Error())
		}
		if len(args) > 1 {
			where = fmt.Sprintf(where, args[1:]...)
		}
		return where + ": " + msg.Error()
	case string:
		if len(args) == 0 {
			return msg
		}
		return fmt.Sprintf(msg, args...)
	default:
		return fmt.Sprintf("message %v has unknown type %T", message, msg)
	}
}
