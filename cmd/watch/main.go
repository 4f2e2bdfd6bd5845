// Observador de cambios para el dashboard: se autentica contra la API,
// arranca el sincronizador por sondeo y registra en consola cada alta o
// modificación remota de usuarios, productos y pedidos.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/likeus-api/internal/client"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/pkg/config"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

func main() {
	email := flag.String("email", "admin@example.com", "email de la cuenta")
	password := flag.String("password", "admin123", "contraseña de la cuenta")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	c := client.New(cfg.Client.BaseURL, log)
	ctx := context.Background()

	session, err := c.Login(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("login")
	}
	log.Info().Str("user", session.User.Email).Str("role", session.User.Role).Msg("sesión iniciada")

	bus := c.Events()
	bus.On(client.EventUserCreated, func(p any) {
		u := p.(*entity.User)
		log.Info().Str("email", u.Email).Msg("usuario creado")
	})
	bus.On(client.EventUserUpdated, func(p any) {
		u := p.(*entity.User)
		log.Info().Str("email", u.Email).Msg("usuario modificado")
	})
	bus.On(client.EventProductCreated, func(p any) {
		pr := p.(*entity.Product)
		log.Info().Str("name", pr.Name).Str("id", pr.ID).Msg("producto creado")
	})
	bus.On(client.EventProductUpdated, func(p any) {
		pr := p.(*entity.Product)
		log.Info().Str("name", pr.Name).Str("id", pr.ID).Msg("producto modificado")
	})
	bus.On(client.EventProductDeleted, func(p any) {
		pr := p.(*entity.Product)
		log.Info().Str("name", pr.Name).Str("id", pr.ID).Msg("producto eliminado")
	})
	bus.On(client.EventOrderCreated, func(p any) {
		o := p.(*entity.Order)
		log.Info().Str("id", o.ID).Str("total", o.Total.String()).Msg("pedido creado")
	})
	bus.On(client.EventOrderUpdated, func(p any) {
		o := p.(*entity.Order)
		log.Info().Str("id", o.ID).Str("status", o.Status).Msg("pedido modificado")
	})

	poller := client.NewPoller(c, cfg.Client.PollInterval)
	stop := poller.Start(ctx)
	defer stop()

	log.Info().
		Str("api", cfg.Client.BaseURL).
		Dur("interval", cfg.Client.PollInterval).
		Msg("observando cambios remotos (Ctrl+C para salir)")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("observador detenido")
}
