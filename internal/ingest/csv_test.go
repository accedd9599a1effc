package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = `Date,Type,URL,Score,CLS,LCP,SI,TBT,FCP,Date,Type,URL,Score,CLS,LCP,SI,TBT,FCP
2024-01-02,nota,https://a.example/1,80,0.1,2500,3000,150,1200,2024-01-02,nota,https://b.example/1,70,0.2,3000,4000,300,1500

2024-01-01,video,https://a.example/2,90,0.05,2000,2500,100,1000,2024-01-01,video,https://b.example/2,60,0.3,3500,4500,400,1800
,,,,,,,,,,,,,,,,,
`

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(sheet))
	require.NoError(t, err)

	assert.Len(t, ds.Header, 18)
	assert.Equal(t, "Date", ds.Header[0])
	assert.Equal(t, "Date_1", ds.Header[9])
	assert.Equal(t, "FCP_1", ds.Header[17])

	require.Len(t, ds.Rows, 2, "blank lines and all-empty records are skipped")
	assert.Equal(t, "80", ds.Rows[0]["Score"])
	assert.Equal(t, "70", ds.Rows[0]["Score_1"])
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, ds.Dates)
}

func TestParse_ShortRecord(t *testing.T) {
	ds, err := Parse(strings.NewReader("Date,Type,Score\n2024-01-01,nota\n"))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)

	_, ok := ds.Rows[0]["Score"]
	assert.False(t, ok, "missing trailing cells should be absent, not empty")
}

func TestParse_TrimsCells(t *testing.T) {
	ds, err := Parse(strings.NewReader("Date,Type,Score\n 2024-01-01 , nota ,80\n"))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)

	assert.Equal(t, "2024-01-01", ds.Rows[0]["Date"])
	assert.Equal(t, "nota", ds.Rows[0]["Type"])
	assert.Equal(t, []string{"2024-01-01"}, ds.Dates)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Parse(strings.NewReader("Date,Type,Score\n"))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestDedupeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"unique", []string{"a", "b"}, []string{"a", "b"}},
		{"repeated", []string{"Score", "Score", "Score"}, []string{"Score", "Score_1", "Score_2"}},
		{"collision with literal", []string{"a", "a_1", "a"}, []string{"a", "a_1", "a_2"}},
		{"byte order mark", []string{"\ufeffDate", "Type"}, []string{"Date", "Type"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeHeader(tt.in))
		})
	}
}
