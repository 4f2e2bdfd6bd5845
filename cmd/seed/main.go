// Siembra la base de datos con las cuentas de demostración y el catálogo
// inicial de camisetas. Es idempotente: los documentos ya existentes se
// dejan intactos.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/application/usecase"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
	"github.com/jhoicas/likeus-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/likeus-api/pkg/config"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

func seedUsers() []dto.CreateUserRequest {
	return []dto.CreateUserRequest{
		{Email: "admin@example.com", Password: "admin123", Name: "Admin", Role: entity.RoleAdmin},
		{Email: "user@example.com", Password: "user123", Name: "Usuario Demo", Role: entity.RoleUser},
	}
}

func seedProducts() []dto.CreateProductRequest {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	colors := []string{"black", "white", "navy", "gray"}
	sizes := []string{"XS", "S", "M", "L", "XL"}
	return []dto.CreateProductRequest{
		{
			Name:        "Camiseta clásica blanca",
			Description: "Algodón peinado de 180 g, corte regular.",
			Price:       price("19.99"),
			Images:      []string{"/images/classic-white.jpg"},
			Colors:      []string{"white"},
			Sizes:       sizes,
			Category:    "basics",
			Featured:    true,
			Stock:       120,
		},
		{
			Name:        "Camiseta logo bordado",
			Description: "Logo bordado al tono sobre algodón orgánico.",
			Price:       price("24.99"),
			Images:      []string{"/images/embroidered-logo.jpg"},
			Colors:      colors,
			Sizes:       sizes,
			Category:    "basics",
			BestSeller:  true,
			Stock:       80,
		},
		{
			Name:        "Camiseta gráfica edición verano",
			Description: "Estampado serigrafiado de la colección de verano.",
			Price:       price("29.99"),
			Images:      []string{"/images/summer-graphic.jpg"},
			Colors:      []string{"white", "navy"},
			Sizes:       sizes,
			Category:    "graphic",
			IsNew:       true,
			Stock:       60,
		},
		{
			Name:        "Camiseta oversize premium",
			Description: "Corte oversize en algodón pesado de 240 g.",
			Price:       price("34.99"),
			Images:      []string{"/images/oversize-premium.jpg"},
			Colors:      []string{"black", "gray"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Category:    "premium",
			Featured:    true,
			IsNew:       true,
			Stock:       40,
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer mongodb.Disconnect(client)

	userUC := usecase.NewUserUseCase(mongodb.NewUserRepository(db))
	productUC := usecase.NewProductUseCase(mongodb.NewProductRepository(db))

	for _, u := range seedUsers() {
		created, err := userUC.Create(ctx, u)
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			log.Info().Str("email", u.Email).Msg("usuario ya existe, se omite")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("sembrando usuario")
		}
		log.Info().Str("email", created.Email).Str("role", created.Role).Msg("usuario creado")
	}

	existing, err := productUC.List(ctx, repository.ProductFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("listando catálogo")
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, p := range seedProducts() {
		if byName[p.Name] {
			log.Info().Str("name", p.Name).Msg("producto ya existe, se omite")
			continue
		}
		created, err := productUC.Create(ctx, p)
		if err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("sembrando producto")
		}
		log.Info().Str("name", created.Name).Str("id", created.ID).Msg("producto creado")
	}

	log.Info().Msg("siembra completada")
}
