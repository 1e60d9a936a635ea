package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/controllers"
	"interim-system/internal/listeners"
	"interim-system/internal/repositories"
	"interim-system/internal/services"
	"interim-system/pkg/config"
	"interim-system/pkg/eventbus"
	"interim-system/pkg/middleware"
	"interim-system/pkg/service"
)

// InitRouter assemble repositories, services et contrôleurs puis
// enregistre toutes les routes. /auth/login et /auth/refresh
// sont publiques, tout le reste passe par le jeton.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: enregistrement des routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	timeout := cfg.Server.RequestTimeout

	// Infrastructure partagée.
	store := cache.NewStore()
	bus := eventbus.New(logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	listeners.NewCacheInvalidationListener(cacheRepo, logger).Register(bus)

	// Repositories.
	repoLogger := logger.Named("repositories")
	agenceRepo := repositories.NewAgenceRepository(dbConn, repoLogger)
	qualificationRepo := repositories.NewQualificationRepository(dbConn, repoLogger)
	interimaireRepo := repositories.NewInterimaireRepository(dbConn, repoLogger)
	clientRepo := repositories.NewClientRepository(dbConn, repoLogger)
	commandeRepo := repositories.NewCommandeRepository(dbConn, repoLogger)
	utilisateurRepo := repositories.NewUtilisateurRepository(dbConn, repoLogger)
	reportRepo := repositories.NewReportRepository(dbConn, repoLogger)

	// Services.
	svcLogger := logger.Named("services")
	guard := services.NewGuardService(commandeRepo, interimaireRepo, clientRepo, svcLogger)
	listTTL := cfg.Redis.ListTTL
	agenceService := services.NewAgenceService(agenceRepo, guard, store, cacheRepo, listTTL, bus, svcLogger)
	qualificationService := services.NewQualificationService(qualificationRepo, guard, store, cacheRepo, listTTL, bus, svcLogger)
	interimaireService := services.NewInterimaireService(interimaireRepo, guard, store, cacheRepo, listTTL, bus, svcLogger)
	clientService := services.NewClientService(clientRepo, guard, store, cacheRepo, listTTL, bus, svcLogger)
	commandeService := services.NewCommandeService(commandeRepo, interimaireRepo, store, bus, svcLogger)
	authService := services.NewAuthService(utilisateurRepo, jwtSvc, cacheRepo, svcLogger)
	statsService := services.NewStatsService(store, agenceService, qualificationService, interimaireService, clientService, commandeService, svcLogger)
	reportService := services.NewReportService(reportRepo, svcLogger)

	// Contrôleurs.
	ctrlLogger := logger.Named("controllers")
	agenceCtrl := controllers.NewAgenceController(agenceService, timeout, ctrlLogger)
	qualificationCtrl := controllers.NewQualificationController(qualificationService, timeout, ctrlLogger)
	interimaireCtrl := controllers.NewInterimaireController(interimaireService, timeout, ctrlLogger)
	clientCtrl := controllers.NewClientController(clientService, timeout, ctrlLogger)
	commandeCtrl := controllers.NewCommandeController(commandeService, timeout, ctrlLogger)
	authCtrl := controllers.NewAuthController(authService, timeout, ctrlLogger)
	statsCtrl := controllers.NewStatsController(statsService, timeout, ctrlLogger)
	reportCtrl := controllers.NewReportController(reportService, timeout, ctrlLogger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runAgenceRouter(secureGroup, agenceCtrl)
	runQualificationRouter(secureGroup, qualificationCtrl)
	runInterimaireRouter(secureGroup, interimaireCtrl)
	runClientRouter(secureGroup, clientCtrl)
	runCommandeRouter(secureGroup, commandeCtrl)
	runStatsRouter(secureGroup, statsCtrl)
	runReportRouter(secureGroup, reportCtrl)

	logger.Info("InitRouter: routes enregistrées")
}
