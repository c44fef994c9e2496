package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	accountapp "github.com/muhammadheryan/identity-service/application/account"
	"github.com/muhammadheryan/identity-service/application/otp"
	"github.com/muhammadheryan/identity-service/application/token"
	"github.com/muhammadheryan/identity-service/cmd/config"
	mongoclient "github.com/muhammadheryan/identity-service/cmd/mongo"
	redisclient "github.com/muhammadheryan/identity-service/cmd/redis"
	"github.com/muhammadheryan/identity-service/constant"
	_ "github.com/muhammadheryan/identity-service/docs"
	accountrepo "github.com/muhammadheryan/identity-service/repository/account"
	redisRepo "github.com/muhammadheryan/identity-service/repository/redis"
	"github.com/muhammadheryan/identity-service/thirdparty/notifier"
	"github.com/muhammadheryan/identity-service/thirdparty/rabbitmq"
	"github.com/muhammadheryan/identity-service/transport"
	"github.com/muhammadheryan/identity-service/utils/logger"
	"github.com/muhammadheryan/identity-service/utils/password"
	"go.uber.org/zap"
)

// @title IDENTITY SERVICE API
// @version 1.0
// @description User and admin identity with OTP verification
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("store", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	userRepo, adminRepo, closeStore := openStores(ctx, cfg)
	defer closeStore()

	// Redis holds session ids; without it tokens are validated by signature only
	redisClient, err := redisclient.New(cfg)
	if err != nil {
		logger.Warn("redis unavailable, session tracking disabled", zap.Error(err))
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
	}
	RedisRepo := redisRepo.NewRepository(redisClient)

	dispatcher, closeDispatcher := newDispatcher(cfg)
	defer closeDispatcher()

	// Initialize application layers
	issuer := token.NewJWTIssuer(cfg.Auth, RedisRepo)
	engine := otp.NewEngine(cfg.OTP)
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	UserApp := accountapp.NewAccountApp(cfg, accountapp.UserPolicy(cfg), userRepo, engine, hasher, dispatcher, issuer)
	AdminApp := accountapp.NewAccountApp(cfg, accountapp.AdminPolicy(cfg), adminRepo, engine, hasher, dispatcher, issuer)

	httpTransport := transport.NewTransport(UserApp, AdminApp, issuer, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}

// openStores returns the user and admin repositories for the configured driver.
func openStores(ctx context.Context, cfg *config.Config) (accountrepo.AccountRepository, accountrepo.AccountRepository, func()) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("using in-memory account store, data is lost on restart")
		return accountrepo.NewMemoryRepository(), accountrepo.NewMemoryRepository(), func() {}

	case "mongo":
		client, db, err := mongoclient.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			logger.Fatal("err connect mongo", zap.Error(err))
		}
		users, err := accountrepo.NewMongoRepository(ctx, db, constant.RoleUser)
		if err != nil {
			logger.Fatal("err init users collection", zap.Error(err))
		}
		admins, err := accountrepo.NewMongoRepository(ctx, db, constant.RoleAdmin)
		if err != nil {
			logger.Fatal("err init admins collection", zap.Error(err))
		}
		return users, admins, func() {
			_ = client.Disconnect(context.Background())
		}

	default:
		db, err := sqlx.Connect("mysql", cfg.GetDSN())
		if err != nil {
			logger.Fatal("err connect db", zap.Error(err))
		}

		// Set database connection pool settings
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

		return accountrepo.NewMySQLRepository(db, constant.RoleUser), accountrepo.NewMySQLRepository(db, constant.RoleAdmin), func() {
			_ = db.Close()
		}
	}
}

// newDispatcher queues deliveries on RabbitMQ when enabled, otherwise sends inline.
func newDispatcher(cfg *config.Config) (notifier.Dispatcher, func()) {
	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		return publisher, func() {
			_ = publisher.Close()
		}
	}
	return notifier.New(cfg), func() {}
}
