package chat

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// FollowUpMarker separates the answer from suggested follow-up questions.
const FollowUpMarker = "<!-- FOLLOW_UP -->"

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	bareJSON   = regexp.MustCompile(`\{[\s\S]*\}`)
	fenceTags  = regexp.MustCompile("```json|```")
	bullet     = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
)

// ExtractChart finds a chart block in content. A fenced json block is tried
// first, then the widest bare {...}. When the block parses and carries a
// chart key, the block and any leftover fence tags are removed from the
// returned text. Anything else leaves content untouched and returns nil.
func ExtractChart(content string) (string, *model.ChartSpec) {
	raw, whole := "", ""
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		raw, whole = m[1], m[0]
	} else if m := bareJSON.FindString(content); m != "" {
		raw, whole = m, m
	}
	if raw == "" {
		return content, nil
	}

	var parsed struct {
		Chart *model.ChartSpec `json:"chart"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Chart == nil {
		return content, nil
	}

	text := strings.Replace(content, whole, "", 1)
	text = fenceTags.ReplaceAllString(text, "")
	return strings.TrimSpace(text), parsed.Chart
}

// ExtractFollowUps splits content at FollowUpMarker. Bulleted lines after
// the marker that end in "?" become follow-ups. Without the marker there are
// none and content is returned unchanged.
func ExtractFollowUps(content string) (string, []string) {
	i := strings.Index(content, FollowUpMarker)
	if i < 0 {
		return content, []string{}
	}

	body := strings.TrimSpace(content[:i])
	tail := content[i+len(FollowUpMarker):]

	questions := []string{}
	for _, line := range strings.Split(tail, "\n") {
		if !bullet.MatchString(line) {
			continue
		}
		q := strings.TrimSpace(bullet.ReplaceAllString(line, ""))
		if strings.HasSuffix(q, "?") {
			questions = append(questions, q)
		}
	}
	return body, questions
}

// Extract applies ExtractChart then ExtractFollowUps.
func Extract(content string) (string, *model.ChartSpec, []string) {
	text, chart := ExtractChart(content)
	text, followUps := ExtractFollowUps(text)
	return text, chart, followUps
}
