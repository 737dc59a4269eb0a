package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments understood by New
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// New creates a new structured logger for env.
// Output goes to stderr so stdout stays free for rendered tables. The test
// environment discards everything.
func New(env string) (*zap.Logger, error) {
	var config zap.Config

	switch env {
	case EnvTest:
		return zap.NewNop(), nil
	case EnvProduction:
		config = zap.NewProductionConfig()
		config.Encoding = "json"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build %q logger: %w", env, err)
	}

	return logger, nil
}

// Quiet raises the minimum level of an existing logger, used by the console
// to hide request chatter unless --verbose is set.
func Quiet(l *zap.Logger, level zapcore.Level) *zap.Logger {
	return l.WithOptions(zap.IncreaseLevel(level))
}
