package chat

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
)

// Prompt modes.
const (
	ModeSingle = "single"
	ModeTrend  = "trend"
)

// Summary holds pre-aggregated metrics: date -> content type -> outlet.
type Summary map[string]map[string]map[string]model.MetricSet

// promptMetrics is the order metrics are listed in prompts.
var promptMetrics = []struct {
	Label  string
	Metric model.Metric
}{
	{"Score", model.MetricScore},
	{"CLS", model.MetricCLS},
	{"LCP", model.MetricLCP},
	{"SI", model.MetricSI},
	{"TBT", model.MetricTBT},
	{"FCP", model.MetricFCP},
}

const chartInstruction = `If possible, respond with a chart JSON like:
` + "```json" + `
{
  "chart": {
    "type": "pie" or "bar",
    "title": "Example Chart",
    "labels": ["Company A", "Company B"],
    "values": [50, 100]
  }
}
` + "```"

const followUpInstruction = `End your answer with the line ` + FollowUpMarker + ` followed by two or three
short follow-up questions as a bulleted list, each ending with "?".`

// SystemContext describes the outlets, content types and metrics to the model.
func SystemContext() Message {
	var b strings.Builder
	b.WriteString("You are an expert web performance analyst helping TV Azteca evaluate Lighthouse performance across news websites.\n\n")
	b.WriteString("CONTENT TYPES\n")
	b.WriteString("- 'nota': standard articles\n")
	b.WriteString("- 'video': video-based articles\n\n")
	b.WriteString("METRICS (Lighthouse, headless Chrome)\n")
	b.WriteString("- Score: overall performance score (0-100)\n")
	b.WriteString("- CLS: Cumulative Layout Shift\n")
	b.WriteString("- LCP: Largest Contentful Paint (ms)\n")
	b.WriteString("- SI: Speed Index (ms)\n")
	b.WriteString("- TBT: Total Blocking Time (ms)\n")
	b.WriteString("- FCP: First Contentful Paint (ms)\n\n")
	b.WriteString("OUTLET GROUPS\n")
	for _, g := range []struct{ group, title string }{
		{schema.GroupAzteca, "TV Azteca main brands"},
		{schema.GroupLocal, "TV Azteca local brands"},
		{schema.GroupCompetition, "Competition"},
		{schema.GroupImage, "Image brands"},
	} {
		names := make([]string, 0, 16)
		for _, o := range schema.Group(g.group) {
			names = append(names, o.Name)
		}
		fmt.Fprintf(&b, "- %s: %s\n", g.title, strings.Join(names, ", "))
	}
	b.WriteString("\nDATA FORMAT\n")
	b.WriteString("Each sheet row holds 9 columns per outlet: [Date, Type, URL, Score, CLS, LCP, SI, TBT, FCP].\n")
	b.WriteString("The numbers you receive are averages already computed from that sheet.\n\n")
	b.WriteString("Compare outlets and groups using precise metric values. If data is missing, say so.\n\n")
	b.WriteString(followUpInstruction)
	return Message{Role: "system", Content: b.String()}
}

// SinglePrompt averages each outlet's metrics over dates for one content
// type and asks question about them.
func SinglePrompt(s Summary, dates []string, ct model.ContentType, question string) string {
	acc := map[string]map[model.Metric][]float64{}
	for _, d := range dates {
		for outlet, ms := range s[d][string(ct)] {
			if acc[outlet] == nil {
				acc[outlet] = map[model.Metric][]float64{}
			}
			for _, pm := range promptMetrics {
				if v := ms.Get(pm.Metric); v != nil {
					acc[outlet][pm.Metric] = append(acc[outlet][pm.Metric], *v)
				}
			}
		}
	}

	averaged := make(map[string]model.MetricSet, len(acc))
	for outlet, byMetric := range acc {
		var ms model.MetricSet
		for m, vals := range byMetric {
			var sum float64
			for _, v := range vals {
				sum += v
			}
			avg := math.Round(sum/float64(len(vals))*100) / 100
			ms.Set(m, &avg)
		}
		averaged[outlet] = ms
	}

	var b strings.Builder
	b.WriteString("### CONTEXTO\n")
	fmt.Fprintf(&b, "Promedio de métricas para el tipo de contenido %q en las fechas: %s.\n", ct, strings.Join(dates, ", "))
	b.WriteString("Cada valor corresponde al promedio entre los días seleccionados para cada medio.\n\n")
	b.WriteString(outletLines(averaged))
	b.WriteString("\n\n### PREGUNTA\n")
	b.WriteString(question)
	b.WriteString("\n\nIncluye resultados para todas las marcas que tengan datos en las fechas seleccionadas, aunque el usuario haya mencionado una sola.\n\n")
	b.WriteString(chartInstruction)
	return b.String()
}

// TrendPrompt lists every date and content type separately so the model can
// reason about change over time.
func TrendPrompt(s Summary, dates []string, question string) string {
	var blocks []string
	for _, d := range dates {
		types := s[d]
		keys := make([]string, 0, len(types))
		for t := range types {
			keys = append(keys, t)
		}
		sort.Strings(keys)
		for _, t := range keys {
			blocks = append(blocks, fmt.Sprintf("📅 %s • %s\n%s", d, t, outletLines(types[t])))
		}
	}

	var b strings.Builder
	b.WriteString("### DATOS HISTÓRICOS\n")
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("\n\n### PREGUNTA\n")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(chartInstruction)
	return b.String()
}

// BuildPrompt renders the prompt for mode. While the estimate exceeds budget
// the oldest dates are dropped; the dates actually used are returned. A
// budget of zero disables trimming.
func BuildPrompt(mode string, s Summary, dates []string, ct model.ContentType, question string, budget int) (string, []string) {
	used := append([]string(nil), dates...)
	sort.Sort(sort.Reverse(sort.StringSlice(used)))

	for {
		ordered := append([]string(nil), used...)
		sort.Strings(ordered)

		var prompt string
		if mode == ModeTrend {
			prompt = TrendPrompt(s, ordered, question)
		} else {
			prompt = SinglePrompt(s, ordered, ct, question)
		}
		if budget <= 0 || len(used) <= 1 || EstimateTokens(prompt) <= budget {
			return prompt, ordered
		}
		used = used[:len(used)-1]
	}
}

// EstimateTokens approximates the token count of s at 2.3 characters per token.
func EstimateTokens(s string) int {
	return int(math.Ceil(float64(utf8.RuneCountInString(s)) / 2.3))
}

// ProjectTokens scales a prompt estimate covering days dates to a 31-day month.
func ProjectTokens(tokens, days int) int {
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(float64(tokens) * 31 / float64(days)))
}

// outletLines renders "Outlet — Score: x, CLS: y" lines in catalog order.
// Outlets without any metric are left out.
func outletLines(outlets map[string]model.MetricSet) string {
	names := make([]string, 0, len(outlets))
	for name := range outlets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return catalogRank(names[i], names[j])
	})

	var lines []string
	for _, name := range names {
		ms := outlets[name]
		var parts []string
		for _, pm := range promptMetrics {
			if v := ms.Get(pm.Metric); v != nil {
				parts = append(parts, pm.Label+": "+strconv.FormatFloat(*v, 'f', -1, 64))
			}
		}
		if len(parts) > 0 {
			lines = append(lines, name+" — "+strings.Join(parts, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func catalogRank(a, b string) bool {
	oa, okA := schema.Lookup(a)
	ob, okB := schema.Lookup(b)
	switch {
	case okA && okB:
		return oa.Index < ob.Index
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
