package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/thirdparty/notifier"
	"github.com/muhammadheryan/identity-service/thirdparty/rabbitmq"
	"github.com/muhammadheryan/identity-service/utils/logger"
	"go.uber.org/zap"
)

// worker drains the OTP delivery queue and sends each code through the configured providers.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, notifier.New(cfg))
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	logger.Info("OTP delivery worker running")
	<-ctx.Done()
	logger.Info("Shutting down worker")
}
