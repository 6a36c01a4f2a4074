package log

import (
	"fmt"
	"io"
	"os"

	"bitlink/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 建立 zap logger。CLI 的 stdout 留給互動輸出，所有 log 一律寫 stderr。
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	return newLogger(conf, os.Stderr)
}

func newLogger(conf *config.Configuration, w io.Writer) (*zap.Logger, error) {
	// 1) 解析最小輸出層級；CLI 預設只看 warn 以上
	lvl := zap.WarnLevel
	if conf.Log.Level != "" {
		if err := lvl.UnmarshalText([]byte(conf.Log.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", conf.Log.Level, err)
		}
	}

	atomic := zap.NewAtomicLevelAt(lvl)

	// 2) Encoder 設定（ISO8601 時間、caller/level 鍵等）
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if conf.Log.Encoding == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), atomic)

	// 3) Options：顯示 caller；stacktrace 只在 Error+ 時出現
	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}

	logger := zap.New(core, opts...).With(zap.String("app", conf.App.Name))
	logger.Debug(fmt.Sprintf("zap logger set level: %s", lvl))

	return logger, nil
}
