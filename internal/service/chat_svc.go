package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/metrics"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

var (
	ErrEmptyQuestion    = errors.New("question is required")
	ErrChatUnconfigured = errors.New("chat collaborator is not configured")
)

// Completer sends a conversation to the completion endpoint.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []chat.Message) (*chat.Completion, error)
}

// Generator proxies a raw prompt to the hosted model.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranscriptStore persists chat exchanges.
type TranscriptStore interface {
	Save(ctx context.Context, t *model.Transcript) error
	Recent(ctx context.Context, limit int) ([]model.Transcript, error)
}

// ChatService turns a question plus the selected dates into a prompt of
// pre-aggregated numbers, asks the model and extracts chart and follow-ups.
type ChatService struct {
	summaries   *SummaryService
	client      Completer
	inference   Generator
	transcripts TranscriptStore
	budget      int
}

// NewChatService creates a ChatService. transcripts may be nil; budget is
// the prompt token budget, zero for none.
func NewChatService(summaries *SummaryService, client Completer, inference Generator, transcripts TranscriptStore, budget int) *ChatService {
	return &ChatService{
		summaries:   summaries,
		client:      client,
		inference:   inference,
		transcripts: transcripts,
		budget:      budget,
	}
}

// Ask answers req. Without dates the latest snapshot date is used. The
// upstream error is returned as is so callers can map *chat.APIError.
func (s *ChatService) Ask(ctx context.Context, req model.ChatRequest) (*model.ChatAnswer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if s.client == nil || !s.client.Configured() {
		return nil, ErrChatUnconfigured
	}

	dates := req.Dates
	if len(dates) == 0 {
		latest, err := s.summaries.LatestDates(1)
		if err != nil {
			return nil, err
		}
		dates = latest
	}
	ct := req.Type
	if ct == "" {
		ct = model.ContentNota
	}
	mode := req.Mode
	if mode != chat.ModeTrend {
		mode = chat.ModeSingle
	}

	summary, err := s.summaries.ChatSummary(dates)
	if err != nil {
		return nil, err
	}
	prompt, used := chat.BuildPrompt(mode, summary, dates, ct, question, s.budget)

	completion, err := s.client.Complete(ctx, []chat.Message{
		chat.SystemContext(),
		{Role: "user", Content: prompt},
	})
	if err != nil {
		metrics.Metrics.ChatRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	metrics.Metrics.ChatRequests.WithLabelValues("ok").Inc()

	text, chart, followUps := chat.Extract(completion.Content)
	tokens := chat.EstimateTokens(prompt)
	answer := &model.ChatAnswer{
		Content:         text,
		Chart:           chart,
		FollowUps:       followUps,
		PromptTokens:    tokens,
		ProjectedTokens: chat.ProjectTokens(tokens, len(used)),
		Usage:           completion.Usage,
	}

	if s.transcripts != nil {
		t := &model.Transcript{
			ID:        uuid.New(),
			Question:  question,
			Answer:    text,
			Chart:     chart,
			FollowUps: followUps,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.transcripts.Save(ctx, t); err != nil {
			middleware.Logger.Warn().Err(err).Str("component", "chat").Msg("transcript save failed")
		}
	}
	return answer, nil
}

// Transcripts lists saved exchanges, empty when persistence is off.
func (s *ChatService) Transcripts(ctx context.Context, limit int) ([]model.Transcript, error) {
	if s.transcripts == nil {
		return []model.Transcript{}, nil
	}
	return s.transcripts.Recent(ctx, limit)
}

// Infer proxies prompt to the hosted model.
func (s *ChatService) Infer(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyQuestion
	}
	if s.inference == nil || !s.inference.Configured() {
		return "", ErrChatUnconfigured
	}
	return s.inference.Generate(ctx, prompt)
}
