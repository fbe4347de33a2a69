package main

import (
	"flag"
	"os"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/database"

	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configsdatabase.InitDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
	if closeErr := configsdatabase.CloseDB(); closeErr != nil {
		configslog.Log.Warn("Veritabanı bağlantısı kapatılamadı", zap.Error(closeErr))
	}
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma işlemi başarısız", zap.Error(err))
		configslog.SyncLogger()
		os.Exit(1)
	}
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
