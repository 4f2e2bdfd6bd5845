package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/likeus-api/internal/application/auth"
	"github.com/jhoicas/likeus-api/internal/application/payment"
	"github.com/jhoicas/likeus-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	OrderUC   *usecase.OrderUseCase
	ReceiptUC *usecase.ReceiptUseCase
	AuthUC    *auth.AuthUseCase
	PaymentUC *payment.UseCase
	JWTSecret string
	// RateLimit es opcional; si es nil las rutas de auth no se limitan.
	RateLimit fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit si está configurado)
	authGroup := api.Group("/auth")
	if deps.RateLimit != nil {
		authGroup.Use(deps.RateLimit)
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Payment (público, procesador simulado)
	payments := api.Group("/payment")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/create-intent", paymentHandler.CreateIntent)
	payments.Post("/success", paymentHandler.Success)

	// Products: lectura pública, mutaciones solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Create)
	products.Patch("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Update)
	products.Delete("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), productHandler.Delete)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireAdmin(), userHandler.List)
	// La ruta por email va antes que /:id para que "email" no se capture como ID.
	users.Get("/email/:email", userHandler.GetByEmail)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", RequireAdmin(), userHandler.Create)
	users.Patch("/:id", userHandler.Update)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", RequireAdmin(), orderHandler.Receipt)
	orders.Post("/", orderHandler.Create)
	orders.Patch("/:id", RequireAdmin(), orderHandler.Update)
}
