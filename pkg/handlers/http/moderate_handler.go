package http

import (
	"errors"

	appModeration "github.com/devfest-tools/modgate/pkg/app/moderation"
	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/devfest-tools/modgate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type moderateRequest struct {
	Prompt string `json:"prompt"`
}

type moderateResponse struct {
	CocViolation bool       `json:"cocViolation"`
	NSFW         bool       `json:"nsfw"`
	Rubbish      bool       `json:"rubbish"`
	Feedback     string     `json:"feedback"`
	Status       string     `json:"status"`
	ID           *uuid.UUID `json:"id,omitempty"`
}

type moderateHandler struct {
	logger   *logrus.Logger
	pipeline *appModeration.Pipeline
}

func NewModerateHandler(logger *logrus.Logger, pipeline *appModeration.Pipeline) Handler {
	return &moderateHandler{
		logger:   logger,
		pipeline: pipeline,
	}
}

// Handle @Summary Analyze a piece of text
// @Description Runs the submitted text through the content-policy pipeline and records the verdict
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body moderateRequest true "Text to analyze"
// @Success 200 {object} moderateResponse "Verdict, resolved status and record id"
// @Failure 401 {object} map[string]interface{} "No valid session"
// @Failure 403 {object} map[string]interface{} "Caller not on the allow-list"
// @Failure 500 {object} map[string]interface{} "Internal error with fallback-shaped body"
// @Router /api/v1/moderation [post]
func (h *moderateHandler) Handle(c *fiber.Ctx) error {
	var req moderateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to bind moderation request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	claim := middleware.IdentityFromCtx(c)

	result, err := h.pipeline.Run(c.Context(), claim, req.Prompt)
	if err != nil {
		return h.handlePipelineError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(moderateResponse{
		CocViolation: result.Verdict.CocViolation,
		NSFW:         result.Verdict.NSFW,
		Rubbish:      result.Verdict.Rubbish,
		Feedback:     result.Verdict.Feedback,
		Status:       result.Status,
		ID:           result.ID,
	})
}

func (h *moderateHandler) handlePipelineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appModeration.ErrNoIdentity):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	case errors.Is(err, appModeration.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied. You are not authorized to use this service.",
		})
	case errors.Is(err, appModeration.ErrInputTooLong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Input too long"})
	case errors.Is(err, appModeration.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	h.logger.WithError(err).Error("moderation pipeline failed")

	fallback := moderation.SafeFallback()
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"cocViolation": fallback.CocViolation,
		"nsfw":         fallback.NSFW,
		"rubbish":      fallback.Rubbish,
		"feedback":     moderation.InternalErrorFeedback,
		"error":        "Something went wrong",
	})
}
