package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/likeus-api/internal/application/auth"
	"github.com/jhoicas/likeus-api/internal/application/payment"
	"github.com/jhoicas/likeus-api/internal/application/usecase"
	"github.com/jhoicas/likeus-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/likeus-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/likeus-api/internal/interfaces/http"
	"github.com/jhoicas/likeus-api/pkg/config"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo)
	paymentUC := payment.NewUseCase()

	// PDF: recibo imprimible del pedido para el dashboard
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := usecase.NewReceiptUseCase(orderRepo, userRepo, receiptGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Rate limiter sobre Redis para las rutas de auth. Sin REDIS_ADDR la
	// tienda arranca sin limitador.
	var rateLimit fiber.Handler
	if cfg.Redis.Addr != "" {
		limiter, err := httpRouter.NewRedisRateLimiter(cfg.Redis, 20, time.Minute, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer limiter.Close()
		rateLimit = httpRouter.RateLimitMiddleware(limiter)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Like Us API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		UserUC:    userUC,
		OrderUC:   orderUC,
		ReceiptUC: receiptUC,
		AuthUC:    authUC,
		PaymentUC: paymentUC,
		JWTSecret: cfg.JWT.Secret,
		RateLimit: rateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
