package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

type RefreshHandler struct {
	svc *service.RefreshService
}

func NewRefreshHandler(svc *service.RefreshService) *RefreshHandler {
	return &RefreshHandler{svc: svc}
}

// Refresh handles POST /api/refresh: refetches every source now.
func (h *RefreshHandler) Refresh(c fiber.Ctx) error {
	runs := h.svc.RefreshAll(c.Context())
	return c.JSON(fiber.Map{"runs": runs})
}

// History handles GET /api/refreshes?limit=
func (h *RefreshHandler) History(c fiber.Ctx) error {
	limit := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	runs, err := h.svc.History(c.Context(), limit)
	if err != nil {
		return serviceError(c, err, "Failed to list refreshes")
	}
	return c.JSON(runs)
}
