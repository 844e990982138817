package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/adapter/http"
	"github.com/IdiotCoffee/jobforge/internal/adapter/repository"
	"github.com/IdiotCoffee/jobforge/internal/config"
	"github.com/IdiotCoffee/jobforge/internal/infrastructure/migration"
	"github.com/IdiotCoffee/jobforge/internal/usecase"
	"github.com/IdiotCoffee/jobforge/pkg/ai"
	infra "github.com/IdiotCoffee/jobforge/pkg/infrastructure"
	"github.com/IdiotCoffee/jobforge/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

// run wires and serves the API until a signal arrives. Errors are returned
// so deferred cleanup still happens.
func run() error {
	cfg, err := config.Load(os.Getenv("JOBFORGE_CONFIG"))
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	closeLog, err := logger.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return errors.Wrap(err, "set up logging")
	}
	defer closeLog()

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return errors.Wrap(err, "database not available")
	}
	defer pool.Close()
	if err := migration.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "migrations failed")
	}

	completer, closeAI, err := ai.NewCompleter(ctx, cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.ServiceURL)
	if err != nil {
		return errors.Wrap(err, "ai client")
	}
	defer closeAI()

	format := cfg.PageFormat()
	markdown := infra.NewMarkdownRenderer("Resume")
	chrome := infra.NewChromedpRenderer(infra.ChromeOptions{
		ExecPath:      cfg.Export.ChromePath,
		Scale:         cfg.Export.Scale,
		Timeout:       cfg.Export.RenderTimeout,
		SettleTimeout: cfg.Export.SettleTimeout,
		Format:        format,
	})

	svc := usecase.NewService(usecase.Deps{
		Users:        repository.NewUserRepo(pool),
		Resumes:      repository.NewResumeRepo(pool),
		CoverLetters: repository.NewCoverLetterRepo(pool),
		AI:           ai.NewClient(completer, cfg.AI.Timeout),
		Exporter:     usecase.NewExporter(markdown, chrome, infra.NewPDFWriter("Resume"), format, cfg.Export.FileName),
		HTML:         markdown,
		Printer:      chrome,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: true,
	})
	http.Register(app, http.NewHandler(svc), http.NewAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("ai", cfg.AI.Provider).Str("page", format.Name).Msg("listening")
		listenErr <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info().Msg("stopped")
	return nil
}
