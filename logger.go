package fontgallery

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger 设置日志。output 为空时写 stderr；
// 交互模式下终端被图像占用，应传入日志文件路径
func SetupLogger(name string, level zapcore.Level, isDev bool, output string) (*zap.Logger, func(), error) {
	var cfg zap.Config
	if isDev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if output != "" {
		cfg.OutputPaths = []string{output}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, func() {}, err
	}

	logger = logger.Named(name)
	return logger, func() { _ = logger.Sync() }, nil
}
