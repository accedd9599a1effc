package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

const dateLayout = "2006-01-02"

// ErrInvalidPeriod wraps every period resolution failure.
var ErrInvalidPeriod = errors.New("invalid period")

// ResolvePeriod builds the period of granularity g ending at anchor from the
// snapshot dates. Weekly, monthly and yearly periods run from the start of
// the anchor's ISO week, month or year through the anchor. Custom uses
// [start, end] and ignores the anchor. An empty anchor means the latest date.
func ResolvePeriod(dates []string, g model.Granularity, anchor, start, end string) (model.Period, error) {
	if g == "" {
		g = model.Daily
	}
	if anchor == "" && len(dates) > 0 {
		anchor = dates[len(dates)-1]
	}

	if g == model.Custom {
		from, err := parseDate(start)
		if err != nil {
			return model.Period{}, fmt.Errorf("%w: start: %v", ErrInvalidPeriod, err)
		}
		to, err := parseDate(end)
		if err != nil {
			return model.Period{}, fmt.Errorf("%w: end: %v", ErrInvalidPeriod, err)
		}
		if to.Before(from) {
			return model.Period{}, fmt.Errorf("%w: end before start", ErrInvalidPeriod)
		}
		return between(dates, g, from, to), nil
	}

	at, err := parseDate(anchor)
	if err != nil {
		return model.Period{}, fmt.Errorf("%w: date: %v", ErrInvalidPeriod, err)
	}

	switch g {
	case model.Daily:
		return between(dates, g, at, at), nil
	case model.Weekly:
		return between(dates, g, weekStart(at), at), nil
	case model.Monthly:
		return between(dates, g, time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC), at), nil
	case model.Yearly:
		return between(dates, g, time.Date(at.Year(), 1, 1, 0, 0, 0, 0, time.UTC), at), nil
	case model.All:
		p := between(dates, g, time.Time{}, at)
		if len(p.Dates) > 0 {
			p.Start = p.Dates[0]
		}
		return p, nil
	}
	return model.Period{}, fmt.Errorf("%w: unknown granularity %q", ErrInvalidPeriod, g)
}

// PreviousPeriod returns the period compared against p: the previous
// snapshot date for daily, the full preceding week, month or year
// otherwise. A custom period uses [refStart, refEnd] when both are given and
// the equal-length window just before p if not. "all" has no previous period.
func PreviousPeriod(dates []string, p model.Period, refStart, refEnd string) (model.Period, error) {
	start, err := parseDate(p.Start)
	if err != nil {
		return model.Period{Granularity: p.Granularity}, nil
	}

	switch p.Granularity {
	case model.Daily:
		i := sort.SearchStrings(dates, p.Start)
		if i == 0 {
			return model.Period{Granularity: p.Granularity}, nil
		}
		d := dates[i-1]
		return model.Period{Granularity: p.Granularity, Start: d, End: d, Dates: []string{d}}, nil
	case model.Weekly:
		ws := weekStart(start)
		return between(dates, p.Granularity, ws.AddDate(0, 0, -7), ws.AddDate(0, 0, -1)), nil
	case model.Monthly:
		ms := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		return between(dates, p.Granularity, ms.AddDate(0, -1, 0), ms.AddDate(0, 0, -1)), nil
	case model.Yearly:
		ys := time.Date(start.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return between(dates, p.Granularity, ys.AddDate(-1, 0, 0), ys.AddDate(0, 0, -1)), nil
	case model.Custom:
		if refStart != "" && refEnd != "" {
			return ResolvePeriod(dates, model.Custom, "", refStart, refEnd)
		}
		end, err := parseDate(p.End)
		if err != nil {
			return model.Period{Granularity: p.Granularity}, nil
		}
		days := int(end.Sub(start).Hours()/24) + 1
		return between(dates, p.Granularity, start.AddDate(0, 0, -days), start.AddDate(0, 0, -1)), nil
	}
	return model.Period{Granularity: p.Granularity}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing")
	}
	return time.Parse(dateLayout, s)
}

// weekStart returns the Monday of t's ISO week.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// between selects the snapshot dates in [from, to]. Dates that do not parse
// are skipped.
func between(dates []string, g model.Granularity, from, to time.Time) model.Period {
	p := model.Period{
		Granularity: g,
		End:         to.Format(dateLayout),
		Dates:       []string{},
	}
	if !from.IsZero() {
		p.Start = from.Format(dateLayout)
	}
	for _, d := range dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if t.Before(from) || t.After(to) {
			continue
		}
		p.Dates = append(p.Dates, d)
	}
	return p
}
