package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/cooldownchess-backend/internal/config"
	"github.com/benbeisheim/cooldownchess-backend/internal/controller"
	"github.com/benbeisheim/cooldownchess-backend/internal/middleware"
	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/benbeisheim/cooldownchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred cleanup runs before os.Exit.
func realMain() int {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	// Initialize services
	options := []model.GameOption{model.WithRules(cfg.Rules())}
	if cfg.Seed != 0 {
		options = append(options, model.WithSeed(cfg.Seed))
	}
	gameManager := service.NewGameManager(log, cfg.MaxGames, options...)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService, log)
	wsController := controller.NewWebSocketController(gameService, log)

	app := newApp(cfg, gameService, gameController, wsController)

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		errc <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return app.ShutdownWithContext(shutdownCtx)
}

func newApp(cfg config.Config, gameService *service.GameService, gameController *controller.GameController, wsController *controller.WebSocketController) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"games":  gameService.GameCount(),
		})
	})

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		middleware.RequireGame(gameService),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         cfg.Origins(),
		}),
	)

	// Set up REST routes
	api := app.Group("/api")

	// Game routes
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", middleware.RequireGame(gameService), gameController.GetGameState)
	gameRoutes.Delete("/:gameId", middleware.RequireGame(gameService), gameController.DeleteGame)
	gameRoutes.Get("/:gameId/board", middleware.RequireGame(gameService), gameController.GetBoard)
	gameRoutes.Post("/:gameId/move", middleware.RequireGame(gameService), gameController.MakeMove)
	gameRoutes.Post("/:gameId/reset", middleware.RequireGame(gameService), gameController.ResetGame)

	return app
}
