package main

import (
	"os"

	"github.com/innovadata/inventario-backend/internal/app"
	config "github.com/innovadata/inventario-backend/internal/cfg"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

//	@title			Inventario Backend API
//	@version		1.0
//	@description	Складской учет: товары, продажи, импорт CSV, отчеты и живые представления.

//	@host		localhost:8080
//	@BasePath	/api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
