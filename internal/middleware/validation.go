package middleware

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// Input length limits.
const (
	MaxOutletLen    = 64
	MaxDashboardLen = 16
	MaxQuestionLen  = 2000
	MaxPromptLen    = 4000
	MaxChatDates    = 31
	MaxHistoryLimit = 500
)

const dateLayout = "2006-01-02"

var (
	// dashboardRe matches dashboard names: lowercase letters only.
	dashboardRe = regexp.MustCompile(`^[a-z]+$`)
	// outletRe matches outlet names as they appear in the catalog.
	outletRe = regexp.MustCompile(`^[\p{L}0-9 .+'-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateDashboard normalizes a dashboard name. Empty means "general".
func ValidateDashboard(name string) (string, string) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "general", ""
	}
	if len(name) > MaxDashboardLen || !dashboardRe.MatchString(name) {
		return "", "dashboard must be a short lowercase name"
	}
	return name, ""
}

// ValidateOutlet checks that an outlet name is present and well-formed.
func ValidateOutlet(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "outlet is required"
	}
	if len(name) > MaxOutletLen {
		return "", "outlet must be at most 64 characters"
	}
	if !outletRe.MatchString(name) {
		return "", "outlet contains invalid characters"
	}
	return name, ""
}

// ValidateContentType accepts nota, video or both. Empty means nota.
func ValidateContentType(ct string) (model.ContentType, string) {
	switch model.ContentType(strings.TrimSpace(strings.ToLower(ct))) {
	case "", model.ContentNota:
		return model.ContentNota, ""
	case model.ContentVideo:
		return model.ContentVideo, ""
	case model.ContentBoth:
		return model.ContentBoth, ""
	}
	return "", "type must be one of nota, video, both"
}

// ValidateGranularity accepts the period granularities. Empty means daily.
func ValidateGranularity(g string) (model.Granularity, string) {
	switch gr := model.Granularity(strings.TrimSpace(strings.ToLower(g))); gr {
	case "":
		return model.Daily, ""
	case model.Daily, model.Weekly, model.Monthly, model.Yearly, model.All, model.Custom:
		return gr, ""
	}
	return "", "granularity must be one of daily, weekly, monthly, yearly, all, custom"
}

// ValidateDate checks an optional YYYY-MM-DD date.
func ValidateDate(field, d string) (string, string) {
	d = strings.TrimSpace(d)
	if d == "" {
		return "", ""
	}
	if _, err := time.Parse(dateLayout, d); err != nil {
		return "", field + " must be a YYYY-MM-DD date"
	}
	return d, ""
}

// ValidateDates checks a list of chat dates.
func ValidateDates(dates []string) ([]string, string) {
	if len(dates) > MaxChatDates {
		return nil, "at most 31 dates can be selected"
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		v, msg := ValidateDate("dates", d)
		if msg != "" {
			return nil, msg
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, ""
}

// ValidateText trims free text and enforces a required, bounded length.
func ValidateText(field, s string, maxLen int) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", field + " is required"
	}
	if len(s) > maxLen {
		return "", field + " must be at most " + strconv.Itoa(maxLen) + " characters"
	}
	return s, ""
}

// ValidateTarget checks a target score in (0, 100].
func ValidateTarget(v float64) (float64, string) {
	if v <= 0 || v > 100 {
		return 0, "target must be between 0 and 100"
	}
	return v, ""
}

// ValidateLimit parses an optional history limit. Empty or invalid values
// fall back to 0, which callers treat as their default.
func ValidateLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	if n > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return n
}
