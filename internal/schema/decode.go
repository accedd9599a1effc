package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// thousandsPrefix matches a leading integer grouped by commas, like 1,234,567.
var thousandsPrefix = regexp.MustCompile(`^[+-]?[1-9][0-9]{0,2}(,[0-9]{3})+`)

// ParseValue reads a sheet cell as a number. Comma thousands separators and a
// single decimal comma are accepted, and trailing garbage after a numeric
// prefix is ignored. Blank or non-numeric cells return nil.
func ParseValue(raw string) *float64 {
	s := normalizeCommas(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(v)
	}

	end := numericPrefix(s)
	if end == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return nil
	}
	return finite(v)
}

func normalizeCommas(s string) string {
	if loc := thousandsPrefix.FindStringIndex(s); loc != nil {
		rest := s[loc[1]:]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return strings.ReplaceAll(s[:loc[1]], ",", "") + rest
		}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// numericPrefix returns the length of the longest leading decimal number in s.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

// Sample decodes all six metric fields of one row for an outlet.
func Sample(row model.Row, cols Columns) model.MetricSet {
	return model.MetricSet{
		Score: ParseValue(row[cols.Score]),
		CLS:   ParseValue(row[cols.CLS]),
		LCP:   ParseValue(row[cols.LCP]),
		SI:    ParseValue(row[cols.SI]),
		TBT:   ParseValue(row[cols.TBT]),
		FCP:   ParseValue(row[cols.FCP]),
	}
}

// Matches reports whether row belongs to date and content type under cols.
// ContentBoth matches either type.
func Matches(row model.Row, cols Columns, date string, ct model.ContentType) bool {
	if row[cols.Date] != date {
		return false
	}
	if ct == model.ContentBoth {
		t := row[cols.Type]
		return t == string(model.ContentNota) || t == string(model.ContentVideo)
	}
	return row[cols.Type] == string(ct)
}
