package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

// serviceError maps a service error onto the API error envelope. Anything
// unrecognized is logged and reported as a 500 with msg.
func serviceError(c fiber.Ctx, err error, msg string) error {
	var apiErr *chat.APIError
	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "NOT_READY", "Data has not been loaded yet")
	case errors.Is(err, service.ErrUnknownDashboard):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "UNKNOWN_DASHBOARD", "Unknown dashboard")
	case errors.Is(err, service.ErrUnknownOutlet):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "UNKNOWN_OUTLET", "Outlet is not part of this dashboard")
	case errors.Is(err, service.ErrUnknownSource):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "UNKNOWN_SOURCE", "Unknown data source")
	case errors.Is(err, service.ErrNoData):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NO_DATA", err.Error())
	case errors.Is(err, service.ErrInvalidPeriod):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PERIOD", err.Error())
	case errors.Is(err, service.ErrEmptyQuestion):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, service.ErrChatUnconfigured):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "CHAT_UNAVAILABLE", "Chat is not configured")
	case errors.As(err, &apiErr):
		middleware.Logger.Warn().Err(err).Str("component", "chat").Int("upstream_status", apiErr.Status).Msg("upstream failure")
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "The language model request failed")
	}

	middleware.Logger.Error().Err(err).Str("path", c.Path()).Msg(msg)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msg)
}

func badRequest(c fiber.Ctx, msg string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", msg)
}
