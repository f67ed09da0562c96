package http

import (
	"math"

	"github.com/devfest-tools/modgate/pkg/domain/submission"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	"github.com/devfest-tools/modgate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryPageSize = 10
	maxHistoryPageSize     = 100
)

type historyHandler struct {
	logger      *logrus.Logger
	users       user.Repository
	submissions submission.Repository
}

func NewHistoryHandler(
	logger *logrus.Logger,
	users user.Repository,
	submissions submission.Repository,
) Handler {
	return &historyHandler{
		logger:      logger,
		users:       users,
		submissions: submissions,
	}
}

// Handle @Summary List the caller's moderation history
// @Description Returns a page of past submissions together with status counts
// @Tags Moderation
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "Submissions, pagination and stats"
// @Failure 401 {object} map[string]interface{} "No valid session"
// @Router /api/v1/moderation/history [get]
func (h *historyHandler) Handle(c *fiber.Ctx) error {
	claim := middleware.IdentityFromCtx(c)
	if claim == nil || claim.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultHistoryPageSize)
	if limit < 1 || limit > maxHistoryPageSize {
		limit = defaultHistoryPageSize
	}

	owner, err := h.users.GetByEmail(c.Context(), claim.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var (
		entries []submission.Submission
		total   int64
		stats   submission.StatusCounts
	)

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		var err error
		entries, err = h.submissions.ListByUser(ctx, owner.ID, (page-1)*limit, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.submissions.CountByUser(ctx, owner.ID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = h.submissions.CountByStatus(ctx, owner.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.WithError(err).Error("failed to fetch moderation history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if entries == nil {
		entries = []submission.Submission{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requests": entries,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
		"stats": stats,
	})
}
