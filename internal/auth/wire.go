package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/auth/controller"
	"dashboard/internal/auth/repository"
	"dashboard/internal/auth/service"
	"dashboard/internal/config"
	"dashboard/internal/web"
)

type Module struct {
	Session  *controller.SessionController
	Verifier *service.AuthService
}

func NewModule(db *sql.DB, cfg *config.Config, renderer *web.Renderer, logger *zap.Logger) *Module {
	users := repository.NewMySQLUserRepository(db)
	svc := service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	return &Module{
		Session:  controller.NewSessionController(svc, renderer, cfg.Auth.TokenTTL, cfg.Auth.SecureCookie, logger),
		Verifier: svc,
	}
}
