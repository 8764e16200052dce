package matches

import (
	"matchup-model/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler handles HTTP requests for match records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the match record routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/matches")
	group.Get("/", h.HandleList)
	group.Get("/summary", h.HandleSummary)
	group.Get("/schema", h.HandleSchema)
}

// HandleList returns a page of stored match records.
// Query parameters: tournament, year, source, team, round, limit, offset.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	page, err := h.service.List(c.Context(), f)
	if err != nil {
		l.Error("Match listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleSummary returns aggregate statistics over the matching records.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Summary(c.Context(), f)
	if err != nil {
		l.Error("Match summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleSchema reports whether the match_records table is usable.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Schema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

func filterFromQuery(c *fiber.Ctx) (Filter, error) {
	f := Filter{
		Tournament: c.Query("tournament"),
		Year:       c.Query("year"),
		Source:     c.Query("source"),
		Team:       c.Query("team"),
		Round:      c.QueryInt("round"),
		Limit:      c.QueryInt("limit", defaultLimit),
		Offset:     c.QueryInt("offset"),
	}
	switch {
	case f.Round < 0:
		return f, fiber.NewError(fiber.StatusBadRequest, "round must not be negative")
	case f.Limit <= 0 || f.Limit > maxLimit:
		return f, fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 1000")
	case f.Offset < 0:
		return f, fiber.NewError(fiber.StatusBadRequest, "offset must not be negative")
	}
	return f, nil
}
