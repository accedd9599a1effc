package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/handler"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/router"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

var blockFields = []string{"Date", "Type", "URL", "Score", "CLS", "LCP", "SI", "TBT", "FCP"}

func block(index int, date, typ, score string) model.Row {
	return model.Row{
		schema.MetricKey(index, "Date"):  date,
		schema.MetricKey(index, "Type"):  typ,
		schema.MetricKey(index, "Score"): score,
		schema.MetricKey(index, "LCP"):   "2500",
	}
}

func testDataset() *model.Dataset {
	raw := make([]string, 0, 33*len(blockFields))
	for i := 0; i < 33; i++ {
		raw = append(raw, blockFields...)
	}
	return &model.Dataset{
		Source: service.SourceMain,
		Header: ingest.DedupeHeader(raw),
		Rows: []model.Row{
			block(0, "2025-05-01", "nota", "70"),
			block(0, "2025-05-02", "nota", "80"),
			block(1, "2025-05-02", "nota", "60"),
		},
		Dates: []string{"2025-05-01", "2025-05-02"},
	}
}

type fakeCompleter struct {
	configured bool
	content    string
	err        error
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(_ context.Context, _ []chat.Message) (*chat.Completion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &chat.Completion{Content: f.content}, nil
}

// newTestApp wires the full router over an in-memory registry. A nil ds
// leaves the main store empty.
func newTestApp(t *testing.T, ds *model.Dataset, llm *fakeCompleter) *fiber.App {
	t.Helper()
	reg := ingest.NewRegistry(map[string]string{service.SourceMain: "http://sheet.test/main.csv"})
	if ds != nil {
		store, ok := reg.Get(service.SourceMain)
		require.True(t, ok)
		require.True(t, store.Commit(store.Begin(), ds))
	}
	if llm == nil {
		llm = &fakeCompleter{}
	}

	dashboards := service.NewDashboardService(reg, nil)
	summaries := service.NewSummaryService(dashboards)
	chatSvc := service.NewChatService(summaries, llm, nil, nil, 0)
	refreshSvc := service.NewRefreshService(reg, ingest.NewFetcher(0), nil)

	app := fiber.New()
	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(nil, nil, dashboards),
		Dashboard: handler.NewDashboardHandler(dashboards),
		Stats:     handler.NewStatsHandler(service.NewStatsService(dashboards)),
		Chat:      handler.NewChatHandler(chatSvc, summaries),
		Refresh:   handler.NewRefreshHandler(refreshSvc),
	}, "*")
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, testDataset(), nil)

	status, body := do(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "disabled", checks["database"].(map[string]any)["status"])
	assert.Equal(t, "disabled", checks["redis"].(map[string]any)["status"])
}

func TestHealth_NotReadyWithoutSnapshot(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", body["status"])
}

func TestScore(t *testing.T) {
	app := newTestApp(t, testDataset(), nil)

	tests := []struct {
		name   string
		target string
		status int
		code   string
		score  any
	}{
		{"latest date", "/api/score?outlet=Heraldo", http.StatusOK, "", 80.0},
		{"explicit date", "/api/score?outlet=Heraldo&date=2025-05-01", http.StatusOK, "", 70.0},
		{"no rows is null", "/api/score?outlet=Milenio", http.StatusOK, "", nil},
		{"missing outlet", "/api/score", http.StatusBadRequest, "INVALID_FIELD", nil},
		{"bad date", "/api/score?outlet=Heraldo&date=05/01/2025", http.StatusBadRequest, "INVALID_FIELD", nil},
		{"bad type", "/api/score?outlet=Heraldo&type=audio", http.StatusBadRequest, "INVALID_FIELD", nil},
		{"unknown outlet", "/api/score?outlet=Nowhere", http.StatusNotFound, "UNKNOWN_OUTLET", nil},
		{"unknown dashboard", "/api/score?outlet=Heraldo&dashboard=sports", http.StatusNotFound, "UNKNOWN_DASHBOARD", nil},
		{"custom without range", "/api/score?outlet=Heraldo&granularity=custom", http.StatusBadRequest, "INVALID_PERIOD", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, status)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(body))
				return
			}
			assert.Equal(t, tt.score, body["score"])
		})
	}
}

func TestDashboardReport(t *testing.T) {
	app := newTestApp(t, testDataset(), nil)

	status, body := do(t, app, http.MethodGet, "/api/dashboard?type=nota", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "general", body["dashboard"])
	perf := body["performance"].([]any)
	require.NotEmpty(t, perf)
	assert.Equal(t, "Heraldo", perf[0].(map[string]any)["name"])
}

func TestDashboardReport_NoSnapshot(t *testing.T) {
	app := newTestApp(t, nil, nil)

	status, body := do(t, app, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "NOT_READY", errorCode(body))
}

func TestOutlets(t *testing.T) {
	app := newTestApp(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/outlets?group=azteca", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var outlets []schema.Outlet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&outlets))
	assert.Equal(t, schema.Group(schema.GroupAzteca), outlets)

	status, body := do(t, app, http.MethodGet, "/api/outlets?group=sports", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", errorCode(body))
}

func TestTarget_Validation(t *testing.T) {
	app := newTestApp(t, testDataset(), nil)

	status, body := do(t, app, http.MethodPost, "/api/target", `{"outlet":"Heraldo","target":150}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", errorCode(body))

	status, body = do(t, app, http.MethodPost, "/api/target", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", errorCode(body))

	status, body = do(t, app, http.MethodPost, "/api/target", `{"outlet":"Heraldo","target":90}`)
	assert.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 80.0, body["currentScore"], 1e-9)
}

func TestChat(t *testing.T) {
	llm := &fakeCompleter{
		configured: true,
		content: "Heraldo lidera.\n```json\n{\"chart\":{\"type\":\"bar\",\"title\":\"Score\",\"labels\":[\"Heraldo\"],\"values\":[80]}}\n```\n" +
			chat.FollowUpMarker + "\n- ¿Qué pasó con Televisa?",
	}
	app := newTestApp(t, testDataset(), llm)

	status, body := do(t, app, http.MethodPost, "/api/chat", `{"question":"¿Quién lidera?"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Heraldo lidera.", body["content"])
	assert.Equal(t, "bar", body["chart"].(map[string]any)["type"])
	assert.Equal(t, []any{"¿Qué pasó con Televisa?"}, body["followUps"])

	status, body = do(t, app, http.MethodPost, "/api/chat", `{"question":"hola","mode":"weekly"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", errorCode(body))

	status, body = do(t, app, http.MethodPost, "/api/chat", `{"question":"   "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", errorCode(body))
}

func TestChat_UpstreamErrors(t *testing.T) {
	app := newTestApp(t, testDataset(), &fakeCompleter{configured: true, err: &chat.APIError{Status: 500, Body: "boom"}})
	status, body := do(t, app, http.MethodPost, "/api/chat", `{"question":"hola"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(body))

	app = newTestApp(t, testDataset(), &fakeCompleter{})
	status, body = do(t, app, http.MethodPost, "/api/chat", `{"question":"hola"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "CHAT_UNAVAILABLE", errorCode(body))
}

func TestHistoryWithoutDatabase(t *testing.T) {
	app := newTestApp(t, testDataset(), nil)

	for _, target := range []string{"/api/refreshes", "/api/chat/transcripts"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.JSONEq(t, `[]`, string(raw), target)
	}
}
