package bootstrap

import (
	"selection-mapper-be/internal/config"
	"selection-mapper-be/internal/controller"
	"selection-mapper-be/internal/pkg/logger"
	"selection-mapper-be/internal/pkg/serverutils"
	"selection-mapper-be/internal/repository/unitofwork"
	"selection-mapper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteTagController controller.INoteTagController

	// Shared
	JwtMiddleware fiber.Handler
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	// 2. Services
	noteTagService := service.NewNoteTagService(
		uowFactory,
		sysLogger,
		cfg.Choice.CacheTTL,
		cfg.Choice.CacheCleanup,
	)

	// 3. Controllers
	return &Container{
		NoteTagController: controller.NewNoteTagController(noteTagService),
		JwtMiddleware:     serverutils.NewJwtMiddleware(cfg.App.JwtSecret),
		Logger:            sysLogger,
	}
}
