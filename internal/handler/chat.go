package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

type ChatHandler struct {
	chat      *service.ChatService
	summaries *service.SummaryService
}

func NewChatHandler(chatSvc *service.ChatService, summaries *service.SummaryService) *ChatHandler {
	return &ChatHandler{chat: chatSvc, summaries: summaries}
}

type chatRequest struct {
	Question string   `json:"question"`
	Dates    []string `json:"dates"`
	Type     string   `json:"type"`
	Mode     string   `json:"mode"`
}

type inferenceRequest struct {
	Prompt string `json:"prompt"`
}

// Summary handles GET /api/summary?date=
func (h *ChatHandler) Summary(c fiber.Ctx) error {
	date, msg := middleware.ValidateDate("date", fiber.Query[string](c, "date"))
	if msg != "" {
		return badRequest(c, msg)
	}
	entries, err := h.summaries.Entries(date)
	if err != nil {
		return serviceError(c, err, "Failed to build summary")
	}
	return c.JSON(entries)
}

// Ask handles POST /api/chat
func (h *ChatHandler) Ask(c fiber.Ctx) error {
	var body chatRequest
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	question, msg := middleware.ValidateText("question", body.Question, middleware.MaxQuestionLen)
	if msg != "" {
		return badRequest(c, msg)
	}
	dates, msg := middleware.ValidateDates(body.Dates)
	if msg != "" {
		return badRequest(c, msg)
	}
	ct, msg := middleware.ValidateContentType(body.Type)
	if msg != "" {
		return badRequest(c, msg)
	}
	switch body.Mode {
	case "", chat.ModeSingle, chat.ModeTrend:
	default:
		return badRequest(c, "mode must be single or trend")
	}

	answer, err := h.chat.Ask(c.Context(), model.ChatRequest{
		Question: question,
		Dates:    dates,
		Type:     ct,
		Mode:     body.Mode,
	})
	if err != nil {
		return serviceError(c, err, "Failed to answer question")
	}
	return c.JSON(answer)
}

// Transcripts handles GET /api/chat/transcripts?limit=
func (h *ChatHandler) Transcripts(c fiber.Ctx) error {
	limit := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	items, err := h.chat.Transcripts(c.Context(), limit)
	if err != nil {
		return serviceError(c, err, "Failed to list transcripts")
	}
	return c.JSON(items)
}

// Inference handles POST /api/inference
func (h *ChatHandler) Inference(c fiber.Ctx) error {
	var body inferenceRequest
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	prompt, msg := middleware.ValidateText("prompt", body.Prompt, middleware.MaxPromptLen)
	if msg != "" {
		return badRequest(c, msg)
	}

	text, err := h.chat.Infer(c.Context(), prompt)
	if err != nil {
		return serviceError(c, err, "Inference failed")
	}
	return c.JSON(fiber.Map{"generated_text": text})
}
