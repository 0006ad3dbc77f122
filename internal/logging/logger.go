package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init initializes and returns a new zap logger. It writes JSON to two
// rotating files (everything, and errors alone for quicker triage) plus a
// readable console stream.
func Init(projectRoot string) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	logDir := filepath.Join(projectRoot, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	appCore := newFileCore(
		filepath.Join(logDir, "app.log"),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.DebugLevel }),
		encoderConfig,
	)
	errorCore := newFileCore(
		filepath.Join(logDir, "error.log"),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel }),
		encoderConfig,
	)

	core := zapcore.NewTee(
		appCore,
		errorCore,
		newConsoleCore(),
	)

	return zap.New(core, zap.AddCaller()), nil
}

// newFileCore creates a core that writes to a rotating file.
func newFileCore(fileName string, enabler zapcore.LevelEnabler, encoderConfig zapcore.EncoderConfig) zapcore.Core {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	})

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writer,
		enabler,
	)
}

// newConsoleCore creates a core that writes to the console.
func newConsoleCore() zapcore.Core {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.DebugLevel }),
	)
}
