package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/joho/godotenv"
)

// AppConfig uygulama genelindeki ayarları tutar.
type AppConfig struct {
	Env  string
	Port string

	JWTSecret    string
	AuthLoginURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDriver    string // "disk" veya "s3"
	UploadDir       string
	UploadPublicURL string
	UploadMaxBytes  int64
	S3Bucket        string
	S3Region        string
	S3PublicURL     string

	WizardSessionTTL time.Duration
	ViewsDir         string
}

var app *AppConfig

// LoadEnv .env dosyasını (varsa) yükler. Ortam değişkenleri dosyadaki değerleri ezer.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, sadece ortam değişkenleri kullanılacak.")
	}
	app = nil
}

// App yüklenmiş uygulama ayarlarını döndürür. İlk çağrıda ortamdan okunur.
func App() *AppConfig {
	if app == nil {
		app = loadAppConfig()
	}
	return app
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Env:              GetEnv("APP_ENV", "development"),
		Port:             GetEnv("APP_PORT", "3000"),
		JWTSecret:        GetEnv("JWT_SECRET", "change-me"),
		AuthLoginURL:     GetEnv("AUTH_LOGIN_URL", "/auth/login"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          GetEnvInt("REDIS_DB", 0),
		UploadDriver:     strings.ToLower(GetEnv("UPLOAD_DRIVER", "disk")),
		UploadDir:        GetEnv("UPLOAD_DIR", "./public/uploads"),
		UploadPublicURL:  GetEnv("UPLOAD_PUBLIC_URL", "/uploads"),
		UploadMaxBytes:   int64(GetEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         GetEnv("S3_REGION", "eu-central-1"),
		S3PublicURL:      os.Getenv("S3_PUBLIC_URL"),
		WizardSessionTTL: GetEnvDuration("WIZARD_SESSION_TTL", 2*time.Hour),
		ViewsDir:         GetEnv("VIEWS_DIR", "./views"),
	}
}

// IsProduction üretim ortamında çalışılıp çalışılmadığını söyler.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// GetEnv ortam değişkenini okur, boşsa varsayılanı döndürür.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt tamsayı ortam değişkenini okur.
func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		configslog.SLog.Warnf("%s değeri sayı değil, varsayılan kullanılıyor: %d", key, def)
	}
	return def
}

// GetEnvDuration "90m", "2h" gibi süre değerlerini okur.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
		configslog.SLog.Warnf("%s geçerli bir süre değil, varsayılan kullanılıyor: %s", key, def)
	}
	return def
}
