package fonts

import (
	"strings"
	"sync"
	"testing"

	"github.com/ByLCY/fittext/layout"
)

func TestMeasurerGrowsWithTextAndSize(t *testing.T) {
	m := NewMeasurer(NewLibrary(""))
	defer m.Close()

	short, err := m.Measure("Hello", 20, "go")
	if err != nil {
		t.Fatalf("Measure error: %v", err)
	}
	long, _ := m.Measure("Hello, world", 20, "go")
	big, _ := m.Measure("Hello", 40, "go")
	if short <= 0 || long <= short {
		t.Fatalf("longer text should be wider: %g vs %g", long, short)
	}
	// 无 hinting 时宽度与字号近似成正比
	if ratio := big / short; ratio < 1.9 || ratio > 2.1 {
		t.Fatalf("doubling the size should roughly double the width, ratio=%g", ratio)
	}
	if _, err := m.Measure("x", 0, "go"); err == nil {
		t.Fatalf("non-positive size should be rejected")
	}
}

// TestLayoutWithRealFont 使用 Go Regular 验证排版不变式：多词行不超过可用宽度。
func TestLayoutWithRealFont(t *testing.T) {
	m := NewMeasurer(NewLibrary(""))
	defer m.Close()

	req := layout.Request{
		Text:          "Sphinx of black quartz, judge my vow.\n\nPack my box with five dozen liquor jugs.",
		Width:         1200,
		Height:        630,
		BorderPercent: 5,
		Align:         layout.AlignJustify,
		FontFamily:    "go",
		Measurer:      m,
	}
	res, err := layout.Layout(req)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if res.FontSize < 10 {
		t.Fatalf("font size unexpectedly small: %d", res.FontSize)
	}
	g := layout.NewGeometry(req.Width, req.Height, req.BorderPercent)
	lines, _, err := layout.Wrap(layout.SplitParagraphs(req.Text), g.MaxWidth, float64(res.FontSize), "go", m)
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}
	for _, ln := range lines {
		if ln.Width > g.MaxWidth && strings.Contains(ln.Text, " ") {
			t.Fatalf("multi-word line overflows: %q (%g > %g)", ln.Text, ln.Width, g.MaxWidth)
		}
	}
	if total := res.LineHeight * float64(len(res.Lines)); total > g.MaxHeight {
		t.Fatalf("text block taller than interior: %g > %g", total, g.MaxHeight)
	}
	if len(res.Lines) != len(lines) {
		t.Fatalf("placed %d lines, wrapped %d", len(res.Lines), len(lines))
	}
}

// TestMeasurerPerGoroutine 验证共享 Library、每个 goroutine 独立 Measurer 的用法。
func TestMeasurerPerGoroutine(t *testing.T) {
	lib := NewLibrary("")
	var wg sync.WaitGroup
	sizes := make([]int, 8)
	errs := make([]error, 8)
	for i := range sizes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := NewMeasurer(lib)
			defer m.Close()
			res, err := layout.Layout(layout.Request{
				Text: "concurrent layout", Width: 800, Height: 400, BorderPercent: 2,
				FontFamily: "go", Measurer: m,
			})
			if err != nil {
				errs[i] = err
				return
			}
			sizes[i] = res.FontSize
		}(i)
	}
	wg.Wait()
	for i := range sizes {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if sizes[i] != sizes[0] {
			t.Fatalf("workers disagree: %v", sizes)
		}
	}
}

func TestShapingMeasurerAgreesWithOpenType(t *testing.T) {
	lib := NewLibrary("")
	om := NewMeasurer(lib)
	defer om.Close()
	sm := NewShapingMeasurer(lib)

	const text = "Sphinx of black quartz"
	a, err := om.Measure(text, 32, "go")
	if err != nil {
		t.Fatalf("opentype: %v", err)
	}
	b, err := sm.Measure(text, 32, "go")
	if err != nil {
		t.Fatalf("shaping: %v", err)
	}
	if d := (a - b) / a; d > 0.05 || d < -0.05 {
		t.Fatalf("widths differ too much: opentype=%g shaping=%g", a, b)
	}
	if w, _ := sm.Measure("", 32, "go"); w != 0 {
		t.Fatalf("empty text should measure 0, got %g", w)
	}
	if _, err := sm.Measure("x", -1, "go"); err == nil {
		t.Fatalf("negative size should be rejected")
	}
}
