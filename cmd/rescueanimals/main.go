// Package main выполняет начальную инициализацию системы учёта
// животных-спасателей: подключение к хранилищу, создание администратора
// по умолчанию и опциональную загрузку демонстрационных данных.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mmeshcher/rescue-animals-system/internal/config"
	"github.com/mmeshcher/rescue-animals-system/internal/repository"
	"github.com/mmeshcher/rescue-animals-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Недоступность хранилища на старте фатальна: продолжать в
	// полуинициализированном состоянии нельзя.
	storage, err := repository.Connect(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.AnimalCollection, cfg.UserCollection)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer storage.Close(context.Background())

	sugar.Infow("connected to mongodb", "database", cfg.DatabaseName)

	svc := service.NewService(storage, storage, logger)

	if err := svc.Bootstrap(ctx, cfg.AdminPassword); err != nil {
		sugar.Fatalw("admin bootstrap error", "error", err.Error())
	}

	if cfg.SampleDataFile != "" {
		if _, err := svc.LoadSampleData(ctx, cfg.SampleDataFile); err != nil {
			sugar.Errorw("sample data error", "error", err.Error(), "file", cfg.SampleDataFile)
		}
	}

	animals := svc.ReadAnimals(ctx, nil)
	sugar.Infow("storage ready", "animals", len(animals))
}
