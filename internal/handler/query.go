package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

// filterParams is the raw, unvalidated filter set of a request.
type filterParams struct {
	Dashboard   string `json:"dashboard"`
	Outlet      string `json:"outlet"`
	Type        string `json:"type"`
	Granularity string `json:"granularity"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	RefStart    string `json:"refStart"`
	RefEnd      string `json:"refEnd"`
}

func queryParams(c fiber.Ctx) filterParams {
	return filterParams{
		Dashboard:   fiber.Query[string](c, "dashboard"),
		Outlet:      fiber.Query[string](c, "outlet"),
		Type:        fiber.Query[string](c, "type"),
		Granularity: fiber.Query[string](c, "granularity"),
		Date:        fiber.Query[string](c, "date"),
		Start:       fiber.Query[string](c, "start"),
		End:         fiber.Query[string](c, "end"),
		RefStart:    fiber.Query[string](c, "refStart"),
		RefEnd:      fiber.Query[string](c, "refEnd"),
	}
}

// toQuery validates p. The outlet is only checked when needOutlet is set.
// A non-empty second return is the validation message.
func (p filterParams) toQuery(needOutlet bool) (service.Query, string) {
	var (
		q   service.Query
		msg string
	)
	if q.Dashboard, msg = middleware.ValidateDashboard(p.Dashboard); msg != "" {
		return q, msg
	}
	if needOutlet {
		if q.Outlet, msg = middleware.ValidateOutlet(p.Outlet); msg != "" {
			return q, msg
		}
	}
	if q.Type, msg = middleware.ValidateContentType(p.Type); msg != "" {
		return q, msg
	}
	if q.Granularity, msg = middleware.ValidateGranularity(p.Granularity); msg != "" {
		return q, msg
	}

	dates := []struct {
		field string
		dst   *string
		raw   string
	}{
		{"date", &q.Date, p.Date},
		{"start", &q.Start, p.Start},
		{"end", &q.End, p.End},
		{"refStart", &q.RefStart, p.RefStart},
		{"refEnd", &q.RefEnd, p.RefEnd},
	}
	for _, d := range dates {
		if *d.dst, msg = middleware.ValidateDate(d.field, d.raw); msg != "" {
			return q, msg
		}
	}
	return q, ""
}
