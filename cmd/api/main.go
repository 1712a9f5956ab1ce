package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"todoWeb/internal/app"
	"todoWeb/internal/config"
	"todoWeb/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg).Init(ctx)
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("Сервер остановлен с ошибкой", err)
		os.Exit(1)
	}
	log.Println("Сервер остановлен")
}
