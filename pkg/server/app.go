package server

import (
	"fmt"

	handlers "github.com/devfest-tools/modgate/pkg/handlers/http"
	"github.com/devfest-tools/modgate/pkg/middleware"

	"github.com/devfest-tools/modgate/pkg/config"
	"github.com/sirupsen/logrus"
)

type (
	AppServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	AppServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAppServer(di AppServerDI) *AppServer {
	return &AppServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *AppServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf(":%d", s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("Starting server")
	return s.Router.Listen(addr)
}

func (s *AppServer) Shutdown() error {
	return s.Router.Shutdown()
}

func (s *AppServer) setupRoutes() {
	s.Router.Use(s.middlewareTransport.PanicRecoverMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.SessionMiddleware.Middleware())

	v1 := s.Router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.Post("/signup", s.handlerTransport.SignupHandler.Handle)
			auth.Post("/login", s.handlerTransport.LoginHandler.Handle)
			auth.Post("/logout", s.handlerTransport.LogoutHandler.Handle)
			auth.Get("/me", s.handlerTransport.MeHandler.Handle)
		}

		moderation := v1.Group("/moderation")
		{
			moderation.Post("", s.handlerTransport.ModerateHandler.Handle)
			moderation.Get("/history", s.handlerTransport.HistoryHandler.Handle)
		}

		admin := v1.Group("/admin", s.middlewareTransport.AdminAuthMiddleware.Middleware())
		{
			admin.Get("/users", s.handlerTransport.ListAuthorizedUsersHandler.Handle)
			admin.Post("/users", s.handlerTransport.CreateAuthorizedUserHandler.Handle)
			admin.Put("/users", s.handlerTransport.UpdateAuthorizedUserHandler.Handle)
			admin.Delete("/users", s.handlerTransport.DeleteAuthorizedUserHandler.Handle)
		}
	}
}
