package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

var snapshotDates = []string{
	"2023-12-28", "2023-12-31",
	"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08", "2024-01-10",
	"2024-02-01", "2024-02-05",
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name   string
		g      model.Granularity
		anchor string
		start  string
		end    string
		want   []string
	}{
		{"daily", model.Daily, "2024-01-03", "", "", []string{"2024-01-03"}},
		{"daily missing date", model.Daily, "2024-01-04", "", "", []string{}},
		{"daily defaults to latest", model.Daily, "", "", "", []string{"2024-02-05"}},
		// 2024-01-10 is a Wednesday; its ISO week starts Monday 2024-01-08.
		{"weekly", model.Weekly, "2024-01-10", "", "", []string{"2024-01-08", "2024-01-10"}},
		// 2024-01-07 is a Sunday and closes the week that began 2024-01-01.
		{"weekly sunday", model.Weekly, "2024-01-07", "", "", []string{"2024-01-01", "2024-01-03", "2024-01-07"}},
		{"monthly", model.Monthly, "2024-01-08", "", "", []string{"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08"}},
		{"yearly", model.Yearly, "2024-02-01", "", "", []string{"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08", "2024-01-10", "2024-02-01"}},
		{"all", model.All, "2024-01-01", "", "", []string{"2023-12-28", "2023-12-31", "2024-01-01"}},
		{"custom", model.Custom, "", "2023-12-30", "2024-01-03", []string{"2023-12-31", "2024-01-01", "2024-01-03"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePeriod(snapshotDates, tt.g, tt.anchor, tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(p.Dates, tt.want) {
				t.Errorf("dates = %v, want %v", p.Dates, tt.want)
			}
		})
	}
}

func TestResolvePeriod_Errors(t *testing.T) {
	tests := []struct {
		name   string
		g      model.Granularity
		anchor string
		start  string
		end    string
	}{
		{"bad anchor", model.Daily, "01/02/2024", "", ""},
		{"custom missing end", model.Custom, "", "2024-01-01", ""},
		{"custom reversed", model.Custom, "", "2024-01-05", "2024-01-01"},
		{"unknown granularity", "fortnightly", "2024-01-01", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(snapshotDates, tt.g, tt.anchor, tt.start, tt.end)
			if !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("err = %v, want ErrInvalidPeriod", err)
			}
		})
	}
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		name     string
		g        model.Granularity
		anchor   string
		start    string
		end      string
		refStart string
		refEnd   string
		want     []string
	}{
		{"daily uses previous snapshot date", model.Daily, "2024-01-07", "", "", "", "", []string{"2024-01-03"}},
		{"daily first date", model.Daily, "2023-12-28", "", "", "", "", nil},
		{"weekly", model.Weekly, "2024-01-10", "", "", "", "", []string{"2024-01-01", "2024-01-03", "2024-01-07"}},
		{"monthly", model.Monthly, "2024-02-05", "", "", "", "", []string{"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08", "2024-01-10"}},
		{"yearly", model.Yearly, "2024-01-03", "", "", "", "", []string{"2023-12-28", "2023-12-31"}},
		{"custom equal length", model.Custom, "", "2024-01-07", "2024-01-10", "", "", []string{"2024-01-03"}},
		{"custom reference", model.Custom, "", "2024-02-01", "2024-02-05", "2023-12-01", "2023-12-31", []string{"2023-12-28", "2023-12-31"}},
		{"all", model.All, "2024-02-05", "", "", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, err := ResolvePeriod(snapshotDates, tt.g, tt.anchor, tt.start, tt.end)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			prev, err := PreviousPeriod(snapshotDates, cur, tt.refStart, tt.refEnd)
			if err != nil {
				t.Fatalf("previous: %v", err)
			}
			if len(prev.Dates) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(prev.Dates, tt.want) {
				t.Errorf("previous dates = %v, want %v", prev.Dates, tt.want)
			}
		})
	}
}
