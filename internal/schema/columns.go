package schema

import (
	"fmt"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// BlockWidth is the number of columns each outlet occupies in a sheet row:
// Date, Type, URL, Score, CLS, LCP, SI, TBT, FCP.
const BlockWidth = 9

// Columns names the header keys that hold one outlet's fields.
type Columns struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	URL   string `json:"url"`
	Score string `json:"score"`
	CLS   string `json:"cls"`
	LCP   string `json:"lcp"`
	SI    string `json:"si"`
	TBT   string `json:"tbt"`
	FCP   string `json:"fcp"`
}

// For returns the column holding metric m.
func (c Columns) For(m model.Metric) string {
	switch m {
	case model.MetricScore:
		return c.Score
	case model.MetricCLS:
		return c.CLS
	case model.MetricLCP:
		return c.LCP
	case model.MetricSI:
		return c.SI
	case model.MetricTBT:
		return c.TBT
	case model.MetricFCP:
		return c.FCP
	}
	return ""
}

// Strategy resolves an outlet to its columns. Strategies are chosen
// explicitly per dashboard; they do not agree for every outlet set.
type Strategy interface {
	Name() string
	Columns(header []string, o Outlet) (Columns, bool)
}

// MetricKey is the suffix addressing rule: index 0 is unsuffixed, any other
// index appends "_i" to the field name.
func MetricKey(index int, field string) string {
	if index == 0 {
		return field
	}
	return fmt.Sprintf("%s_%d", field, index)
}

// SuffixStrategy addresses every field of an outlet through MetricKey.
type SuffixStrategy struct{}

func (SuffixStrategy) Name() string { return "suffix" }

func (SuffixStrategy) Columns(_ []string, o Outlet) (Columns, bool) {
	return suffixed(o.Index, o.Index), true
}

// suffixed builds a Columns whose Date/Type use keyIndex and whose remaining
// fields use metricIndex.
func suffixed(keyIndex, metricIndex int) Columns {
	return Columns{
		Date:  MetricKey(keyIndex, "Date"),
		Type:  MetricKey(keyIndex, "Type"),
		URL:   MetricKey(metricIndex, "URL"),
		Score: MetricKey(metricIndex, "Score"),
		CLS:   MetricKey(metricIndex, "CLS"),
		LCP:   MetricKey(metricIndex, "LCP"),
		SI:    MetricKey(metricIndex, "SI"),
		TBT:   MetricKey(metricIndex, "TBT"),
		FCP:   MetricKey(metricIndex, "FCP"),
	}
}

// KeyTableStrategy looks outlets up in an explicit table. Nothing is inferred.
type KeyTableStrategy struct {
	name  string
	table map[string]Columns
}

// NewKeyTable builds a named key-table strategy.
func NewKeyTable(name string, table map[string]Columns) *KeyTableStrategy {
	return &KeyTableStrategy{name: name, table: table}
}

func (s *KeyTableStrategy) Name() string { return s.name }

func (s *KeyTableStrategy) Columns(_ []string, o Outlet) (Columns, bool) {
	c, ok := s.table[o.Name]
	return c, ok
}

// LocalKeyTable maps the local outlets to Score_14..Score_29. Rows are
// filtered on the first block's Date and Type columns, not the outlet's own.
func LocalKeyTable() *KeyTableStrategy {
	return firstBlockTable("local", Group(GroupLocal))
}

// ImageKeyTable maps the image outlets to Score_30..Score_32, filtering on
// the first block's Date and Type like the local table.
func ImageKeyTable() *KeyTableStrategy {
	return firstBlockTable("image", Group(GroupImage))
}

// VerticalKeyTable maps the vertical sheet outlets to CLS_30..FCP_43.
func VerticalKeyTable() *KeyTableStrategy {
	return firstBlockTable("vertical", Vertical)
}

func firstBlockTable(name string, outlets []Outlet) *KeyTableStrategy {
	table := make(map[string]Columns, len(outlets))
	for _, o := range outlets {
		table[o.Name] = suffixed(0, o.Index)
	}
	return NewKeyTable(name, table)
}

// Anchor selects where a block walk starts counting.
type Anchor int

const (
	// AnchorStart places the first listed outlet at the first block.
	AnchorStart Anchor = iota
	// AnchorEnd right-aligns the listed outlets to the last blocks of the header.
	AnchorEnd
)

// BlockStrategy walks the header in fixed-width blocks. An outlet's block is
// its position in Order, not its catalog index.
type BlockStrategy struct {
	Order  []string
	Width  int
	Anchor Anchor
}

// NewBlockStrategy builds a block walk over the given outlets in order.
func NewBlockStrategy(outlets []Outlet, anchor Anchor) *BlockStrategy {
	order := make([]string, len(outlets))
	for i, o := range outlets {
		order[i] = o.Name
	}
	return &BlockStrategy{Order: order, Width: BlockWidth, Anchor: anchor}
}

func (s *BlockStrategy) Name() string {
	if s.Anchor == AnchorEnd {
		return "block-end"
	}
	return "block"
}

func (s *BlockStrategy) Columns(header []string, o Outlet) (Columns, bool) {
	pos := -1
	for i, name := range s.Order {
		if name == o.Name {
			pos = i
			break
		}
	}
	if pos < 0 || s.Width <= 0 {
		return Columns{}, false
	}

	offset := 0
	if s.Anchor == AnchorEnd {
		offset = len(header)/s.Width - len(s.Order)
	}
	base := (pos + offset) * s.Width
	if base < 0 || base+8 >= len(header) {
		return Columns{}, false
	}

	return Columns{
		Date:  header[base],
		Type:  header[base+1],
		URL:   header[base+2],
		Score: header[base+3],
		CLS:   header[base+4],
		LCP:   header[base+5],
		SI:    header[base+6],
		TBT:   header[base+7],
		FCP:   header[base+8],
	}, true
}
