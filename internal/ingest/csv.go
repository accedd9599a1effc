package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// ErrEmptySheet is returned when the CSV has no header or no data rows.
var ErrEmptySheet = errors.New("sheet has no data rows")

// Parse reads a published sheet export. The first record is the header;
// repeated header names are renamed name_1, name_2, ... in order of
// appearance. Records whose cells are all blank are skipped.
func Parse(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	raw, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := DedupeHeader(raw)

	var rows []model.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(rows)+2, err)
		}
		if blank(rec) {
			continue
		}

		row := make(model.Row, len(header))
		for i, v := range rec {
			if i >= len(header) {
				break
			}
			row[header[i]] = strings.TrimSpace(v)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	return &model.Dataset{
		Header: header,
		Rows:   rows,
		Dates:  uniqueDates(header[0], rows),
	}, nil
}

// DedupeHeader renames repeated column names. The first occurrence keeps
// its name; later ones get the next free numeric suffix.
func DedupeHeader(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	counts := make(map[string]int, len(raw))

	for i, name := range raw {
		name = strings.TrimPrefix(name, "\ufeff")
		if !used[name] {
			used[name] = true
			out[i] = name
			continue
		}
		n := counts[name]
		candidate := ""
		for {
			n++
			candidate = name + "_" + strconv.Itoa(n)
			if !used[candidate] {
				break
			}
		}
		counts[name] = n
		used[candidate] = true
		out[i] = candidate
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func uniqueDates(dateKey string, rows []model.Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if d := strings.TrimSpace(row[dateKey]); d != "" {
			seen[d] = struct{}{}
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
