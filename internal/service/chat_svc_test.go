package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

type fakeCompleter struct {
	reply    string
	err      error
	messages []chat.Message
}

func (f *fakeCompleter) Configured() bool { return true }

func (f *fakeCompleter) Complete(_ context.Context, messages []chat.Message) (*chat.Completion, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &chat.Completion{Content: f.reply, Usage: &model.Usage{TotalTokens: 42}}, nil
}

type memTranscripts struct {
	saved []model.Transcript
}

func (m *memTranscripts) Save(_ context.Context, t *model.Transcript) error {
	m.saved = append(m.saved, *t)
	return nil
}

func (m *memTranscripts) Recent(_ context.Context, _ int) ([]model.Transcript, error) {
	return m.saved, nil
}

func newChatService(t *testing.T, c Completer, store TranscriptStore) *ChatService {
	t.Helper()
	dash := NewDashboardService(loadedRegistry(t, reportDataset()), nil)
	return NewChatService(NewSummaryService(dash), c, nil, store, 0)
}

func TestChatService_Ask(t *testing.T) {
	c := &fakeCompleter{reply: "Heraldo leads.\n```json\n{\"chart\":{\"type\":\"bar\",\"title\":\"Score\",\"labels\":[\"Heraldo\",\"Televisa\"],\"values\":[80,60]}}\n```\n" +
		chat.FollowUpMarker + "\n- What about video?"}
	store := &memTranscripts{}
	svc := newChatService(t, c, store)

	ans, err := svc.Ask(context.Background(), model.ChatRequest{Question: "Who leads?"})
	require.NoError(t, err)

	assert.Equal(t, "Heraldo leads.", ans.Content)
	require.NotNil(t, ans.Chart)
	assert.Equal(t, []float64{80, 60}, ans.Chart.Values)
	assert.Equal(t, []string{"What about video?"}, ans.FollowUps)
	assert.Equal(t, 42, ans.Usage.TotalTokens)
	assert.Greater(t, ans.PromptTokens, 0)
	assert.Equal(t, chat.ProjectTokens(ans.PromptTokens, 1), ans.ProjectedTokens)

	require.Len(t, c.messages, 2)
	assert.Equal(t, "system", c.messages[0].Role)
	assert.Contains(t, c.messages[1].Content, "Heraldo — Score: 80")
	assert.Contains(t, c.messages[1].Content, "Televisa — Score: 60")
	assert.Contains(t, c.messages[1].Content, "2025-05-02")

	require.Len(t, store.saved, 1)
	assert.Equal(t, "Who leads?", store.saved[0].Question)
	assert.Equal(t, "Heraldo leads.", store.saved[0].Answer)
}

func TestChatService_TrendMode(t *testing.T) {
	c := &fakeCompleter{reply: "Flat."}
	svc := newChatService(t, c, nil)

	ans, err := svc.Ask(context.Background(), model.ChatRequest{
		Question: "Trend?",
		Dates:    []string{"2025-05-01", "2025-05-02"},
		Mode:     chat.ModeTrend,
	})
	require.NoError(t, err)

	assert.Equal(t, "Flat.", ans.Content)
	assert.Nil(t, ans.Chart)
	assert.Empty(t, ans.FollowUps)
	assert.Contains(t, c.messages[1].Content, "📅 2025-05-01 • nota\nHeraldo — Score: 70")
}

func TestChatService_Errors(t *testing.T) {
	upstream := &chat.APIError{Status: 500, Body: "boom"}
	svc := newChatService(t, &fakeCompleter{err: upstream}, nil)

	_, err := svc.Ask(context.Background(), model.ChatRequest{Question: "  "})
	assert.True(t, errors.Is(err, ErrEmptyQuestion))

	_, err = svc.Ask(context.Background(), model.ChatRequest{Question: "q"})
	var apiErr *chat.APIError
	assert.True(t, errors.As(err, &apiErr))

	noClient := newChatService(t, nil, nil)
	_, err = noClient.Ask(context.Background(), model.ChatRequest{Question: "q"})
	assert.True(t, errors.Is(err, ErrChatUnconfigured))

	_, err = noClient.Infer(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrChatUnconfigured))

	list, err := noClient.Transcripts(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSummaryService_Entries(t *testing.T) {
	dash := NewDashboardService(loadedRegistry(t, reportDataset()), nil)
	svc := NewSummaryService(dash)

	all, err := svc.Entries("")
	require.NoError(t, err)
	assert.Len(t, all["2025-05-01"], 1)
	assert.Len(t, all["2025-05-02"], 2)

	one, err := svc.Entries("2025-05-02")
	require.NoError(t, err)
	require.Len(t, one, 1)
	entries := one["2025-05-02"]
	assert.Equal(t, "Heraldo", entries[0].Outlet)
	assert.Equal(t, "nota", entries[0].Type)
	require.NotNil(t, entries[0].Score)
	assert.InDelta(t, 80.0, *entries[0].Score, 1e-9)
	assert.Nil(t, entries[0].CLS)
}
