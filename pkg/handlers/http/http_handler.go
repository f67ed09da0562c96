package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Auth
	SignupHandler Handler
	LoginHandler  Handler
	LogoutHandler Handler
	MeHandler     Handler

	// Moderation
	ModerateHandler Handler
	HistoryHandler  Handler

	// Allow-list administration
	ListAuthorizedUsersHandler  Handler
	CreateAuthorizedUserHandler Handler
	UpdateAuthorizedUserHandler Handler
	DeleteAuthorizedUserHandler Handler
}
