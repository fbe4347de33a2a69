package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/pkg/upload"
	"kartvizit.link/routes"
	"kartvizit.link/services"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	// maxFilesPerRequest tek bir istekte gelebilecek en fazla dosya sayısı (galeri).
	maxFilesPerRequest = 20
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.App()
	configsdatabase.InitDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		configslog.Log.Fatal("Dosya deposu başlatılamadı", zap.String("driver", cfg.UploadDriver), zap.Error(err))
	}
	normalizer := upload.NewNormalizer(uploader, 0)
	cardService := services.NewCardService()
	registry := wizard.NewRegistry(cfg.WizardSessionTTL, func() *wizard.Orchestrator {
		return wizard.NewOrchestrator(cardService, normalizer)
	})
	go registry.Run(ctx, time.Minute)

	engine := html.New(cfg.ViewsDir, ".html")
	engine.AddFuncMap(renderer.TemplateFuncs())
	engine.Reload(!cfg.IsProduction())

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: int(cfg.UploadMaxBytes)*maxFilesPerRequest + 1<<20,
		AppName:   "kartvizit.link",
	})
	routes.SetupRoutes(app, registry)

	go func() {
		<-ctx.Done()
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Error("Sunucu hatası", zap.Error(err))
	}

	if err := multierr.Combine(configsdatabase.CloseDB(), configs.CloseSession()); err != nil {
		configslog.Log.Warn("Kapatma sırasında hatalar oluştu", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu kapatıldı.")
}

// newUploader UPLOAD_DRIVER değerine göre dosya deposunu seçer.
func newUploader(ctx context.Context, cfg *configs.AppConfig) (upload.Uploader, error) {
	switch cfg.UploadDriver {
	case "s3":
		return upload.NewS3StoreFromEnv(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
	default:
		return upload.NewDiskStore(cfg.UploadDir, cfg.UploadPublicURL)
	}
}
