package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_DisabledIsNoop(t *testing.T) {
	c := NewCacheService("", time.Minute)
	ctx := context.Background()

	assert.Nil(t, c.Client())
	require.NoError(t, c.SetReport(ctx, "k", map[string]int{"a": 1}))
	data, err := c.GetReport(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Close())
}

func TestCacheService_RoundTripAndTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetReport(ctx, "report:main:1:abc", map[string]int{"a": 1}))

	data, err := c.GetReport(ctx, "report:main:1:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
	assert.Equal(t, time.Minute, mr.TTL("report:main:1:abc"))

	mr.FastForward(2 * time.Minute)
	data, err = c.GetReport(ctx, "report:main:1:abc")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestReportKey(t *testing.T) {
	a, err := ReportKey(SourceMain, 3, Query{Dashboard: DashboardGeneral, Date: "2025-05-01"})
	require.NoError(t, err)
	b, _ := ReportKey(SourceMain, 3, Query{Dashboard: DashboardGeneral, Date: "2025-05-02"})
	c, _ := ReportKey(SourceMain, 4, Query{Dashboard: DashboardGeneral, Date: "2025-05-01"})

	assert.Regexp(t, `^report:main:3:[0-9a-f]{16}$`, a)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
