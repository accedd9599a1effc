package model

import (
	"time"

	"github.com/google/uuid"
)

// ChartSpec is the chart block an assistant answer may embed.
type ChartSpec struct {
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Question string      `json:"question"`
	Dates    []string    `json:"dates"`
	Type     ContentType `json:"type"`
	Mode     string      `json:"mode"`
}

// ChatAnswer is the extracted assistant reply.
type ChatAnswer struct {
	Content         string     `json:"content"`
	Chart           *ChartSpec `json:"chart,omitempty"`
	FollowUps       []string   `json:"followUps"`
	PromptTokens    int        `json:"promptTokens"`
	ProjectedTokens int        `json:"projectedTokens"`
	Usage           *Usage     `json:"usage,omitempty"`
}

// Usage mirrors the token accounting returned by the completion endpoint.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Transcript is a persisted question/answer pair.
type Transcript struct {
	ID        uuid.UUID  `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Chart     *ChartSpec `json:"chart,omitempty"`
	FollowUps []string   `json:"followUps"`
	CreatedAt time.Time  `json:"createdAt"`
}
