package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

type targetRequest struct {
	filterParams
	Target float64 `json:"target"`
}

// Correlation handles GET /api/correlation
func (h *StatsHandler) Correlation(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(true)
	if msg != "" {
		return badRequest(c, msg)
	}
	report, err := h.svc.Correlate(q)
	if err != nil {
		return serviceError(c, err, "Failed to compute correlation")
	}
	return c.JSON(report)
}

// Target handles POST /api/target
func (h *StatsHandler) Target(c fiber.Ctx) error {
	var req targetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	q, msg := req.toQuery(true)
	if msg != "" {
		return badRequest(c, msg)
	}
	target, msg := middleware.ValidateTarget(req.Target)
	if msg != "" {
		return badRequest(c, msg)
	}

	plan, err := h.svc.Target(q, target)
	if err != nil {
		return serviceError(c, err, "Failed to plan target")
	}
	return c.JSON(plan)
}
