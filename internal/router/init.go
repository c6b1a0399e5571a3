package router

import (
	"github.com/hrushireddy/tyredetect-api/internal/application"
	"github.com/hrushireddy/tyredetect-api/internal/container"
	pginfra "github.com/hrushireddy/tyredetect-api/internal/infrastructure/postgres"
	handlers "github.com/hrushireddy/tyredetect-api/internal/interface/http"
	"github.com/hrushireddy/tyredetect-api/internal/router/modules"
)

// InitModules constructs repositories, services and handlers from the
// container singletons and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	analysisRepo := pginfra.NewAnalysisRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetMailer(),
		logger,
		cfg.OTPTTL,
		cfg.MailSendEnabled,
	)
	analysisSvc := application.NewAnalysisService(
		analysisRepo,
		container.GetInference(),
		logger,
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	analysisHandler := handlers.NewAnalysisHandler(analysisSvc, cfg.MaxUploadBytes, logger)
	systemHandler := handlers.NewSystemHandler(container.GetInference(), logger)

	r.Add(modules.NewSystemModule(systemHandler))
	r.Add(modules.NewAuthModule(authHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewAnalysisModule(analysisHandler, userRepo, container.GetJWT()))
}
