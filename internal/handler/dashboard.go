package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

var validGroups = map[string]bool{
	"":                      true,
	schema.GroupCompetition: true,
	schema.GroupAzteca:      true,
	schema.GroupLocal:       true,
	schema.GroupImage:       true,
}

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Outlets handles GET /api/outlets?group=
func (h *DashboardHandler) Outlets(c fiber.Ctx) error {
	group := fiber.Query[string](c, "group")
	if !validGroups[group] {
		return badRequest(c, "group must be one of competition, azteca, local, image")
	}
	return c.JSON(schema.Group(group))
}

// Dates handles GET /api/dates?source=
func (h *DashboardHandler) Dates(c fiber.Ctx) error {
	dates, err := h.svc.Dates(fiber.Query[string](c, "source"))
	if err != nil {
		return serviceError(c, err, "Failed to list dates")
	}
	return c.JSON(fiber.Map{"dates": dates})
}

// Score handles GET /api/score
func (h *DashboardHandler) Score(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(true)
	if msg != "" {
		return badRequest(c, msg)
	}
	score, period, err := h.svc.Score(q)
	if err != nil {
		return serviceError(c, err, "Failed to compute score")
	}
	return c.JSON(fiber.Map{
		"outlet": q.Outlet,
		"type":   q.Type,
		"period": period,
		"score":  score,
	})
}

// Metrics handles GET /api/metrics
func (h *DashboardHandler) Metrics(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(true)
	if msg != "" {
		return badRequest(c, msg)
	}
	set, period, err := h.svc.Metrics(q)
	if err != nil {
		return serviceError(c, err, "Failed to compute metrics")
	}
	return c.JSON(fiber.Map{
		"outlet":  q.Outlet,
		"type":    q.Type,
		"period":  period,
		"metrics": set,
	})
}

// Report handles GET /api/dashboard
func (h *DashboardHandler) Report(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(false)
	if msg != "" {
		return badRequest(c, msg)
	}
	report, err := h.svc.Report(c.Context(), q)
	if err != nil {
		return serviceError(c, err, "Failed to build dashboard")
	}
	return c.JSON(report)
}

// Trend handles GET /api/trend
func (h *DashboardHandler) Trend(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(false)
	if msg != "" {
		return badRequest(c, msg)
	}
	trend, err := h.svc.Trend(q)
	if err != nil {
		return serviceError(c, err, "Failed to compute trend")
	}
	return c.JSON(trend)
}

// Regions handles GET /api/regions
func (h *DashboardHandler) Regions(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(false)
	if msg != "" {
		return badRequest(c, msg)
	}
	regions, err := h.svc.Regions(q)
	if err != nil {
		return serviceError(c, err, "Failed to compute regions")
	}
	return c.JSON(regions)
}

// Series handles GET /api/series
func (h *DashboardHandler) Series(c fiber.Ctx) error {
	q, msg := queryParams(c).toQuery(true)
	if msg != "" {
		return badRequest(c, msg)
	}
	series, err := h.svc.Series(q)
	if err != nil {
		return serviceError(c, err, "Failed to build series")
	}
	return c.JSON(series)
}
