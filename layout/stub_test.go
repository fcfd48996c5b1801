package layout

import (
	"math"
	"unicode/utf8"
)

// monoMeasurer 是测试用的等宽测量后端：每个字符宽 fontSize*0.5。
type monoMeasurer struct {
	calls int
}

func (m *monoMeasurer) Measure(text string, fontSize float64, family string) (float64, error) {
	m.calls++
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.5, nil
}

func lineTexts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
