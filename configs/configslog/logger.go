package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log yapılandırılmış (structured) loglama için kullanılır.
	Log *zap.Logger
	// SLog printf tarzı kısa loglar için kullanılır.
	SLog *zap.SugaredLogger
)

func init() {
	// InitLogger çağrılmadan önce (örn. testlerde) nil logger'a düşmemek için.
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger APP_ENV ve LOG_FILE değerlerine göre global logger'ı kurar.
// Geliştirme ortamında renkli konsol çıktısı, diğer ortamlarda JSON kullanılır.
func InitLogger() {
	env := strings.ToLower(os.Getenv("APP_ENV"))

	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	level := zap.InfoLevel
	if env == "" || env == "development" || env == "dev" {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
		level = zap.DebugLevel
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	// LOG_FILE verilmişse dosyaya da yaz (boyuta göre döndürülür)
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // gün
			Compress:   true,
		})
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	SLog = Log.Sugar()
}

// SyncLogger buffer'daki logları boşaltır. main içinde defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
