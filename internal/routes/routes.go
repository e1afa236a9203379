package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/authz"
	"backoffice/internal/controllers"
	"backoffice/internal/repositories"
	"backoffice/internal/services"
	"backoffice/pkg/config"
	"backoffice/pkg/filestorage"
	"backoffice/pkg/fingerprint"
	"backoffice/pkg/middleware"
	"backoffice/pkg/service"
)

// InitRouter wires repositories, services and controllers and registers
// every route group under /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) error {
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	registry := authz.NewRegistry()
	detector := fingerprint.NewDeviceDetector()
	tokenFactory := service.NewTokenFactory(cfg.BearerTokens, logger)

	userRepo := repositories.NewUserRepository(dbConn, logger)
	roleRepo := repositories.NewRoleRepository(dbConn)
	claimRepo := repositories.NewUserClaimRepository(dbConn)
	tokenRepo := repositories.NewUserTokenRepository(dbConn, logger)
	messageRepo := repositories.NewMessageRepository(dbConn)
	supportRepo := repositories.NewSupportRepository(dbConn)
	folderRepo := repositories.NewFolderRepository(dbConn)
	fileRepo := repositories.NewFileRepository(dbConn)
	contentRepo := repositories.NewContentRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	claimsService := services.NewUserClaimsService(claimRepo, cacheRepo, txManager, registry, logger)
	tokenStore := services.NewTokenStoreService(tokenRepo, tokenFactory, cfg.BearerTokens, logger)
	tokenValidator := services.NewTokenValidatorService(userRepo, tokenStore, logger)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenFactory, tokenStore, claimsService, txManager, logger)
	userService := services.NewUserService(userRepo, tokenRepo, claimsService, txManager, logger)
	roleService := services.NewRoleService(roleRepo)
	messageService := services.NewMessageService(messageRepo, services.NewNoopNotificationSender(), logger)
	supportService := services.NewSupportService(supportRepo, txManager)
	folderService := services.NewFolderService(folderRepo, fileRepo)
	fileService := services.NewFileService(fileRepo, fileStorage, logger)
	contentService := services.NewContentService(contentRepo)
	reportService := services.NewReportService(reportRepo)

	authMW := middleware.NewAuthMiddleware(tokenFactory, tokenValidator, detector, logger)
	gatekeeper := authz.NewGatekeeper(claimsService, logger)

	apiGroup := e.Group("/api")
	secure := apiGroup.Group("", authMW.Auth)
	guard := authz.NewRouteGuard(secure, gatekeeper, registry, "/api")

	runAuthRouter(apiGroup, secure, controllers.NewAuthController(authService, detector, logger))
	runUserRouter(guard, controllers.NewUserController(userService, logger))
	runRoleRouter(guard, controllers.NewRoleController(roleService, logger))
	runClaimsRouter(guard, controllers.NewClaimsController(claimsService, logger))
	runMessageRouter(secure, guard, controllers.NewMessageController(messageService, logger))
	runSupportRouter(secure, guard, controllers.NewSupportController(supportService, logger))
	runFolderRouter(guard, controllers.NewFolderController(folderService, logger))
	runFileRouter(guard, controllers.NewFileController(fileService, logger))
	runContentRouter(guard, controllers.NewContentController(contentService, logger))
	runReportRouter(guard, controllers.NewReportController(reportService, logger))

	return nil
}
