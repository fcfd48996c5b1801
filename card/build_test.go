package card

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ByLCY/fittext/dsl"
	"github.com/ByLCY/fittext/layout"
)

func buildCard(t *testing.T, src string, data any) *Card {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("解析卡片失败: %v", err)
	}
	c, err := Build(doc, data)
	if err != nil {
		t.Fatalf("编译卡片失败: %v", err)
	}
	return c
}

func TestBuildCard(t *testing.T) {
	var data any
	if err := json.Unmarshal([]byte(`{"user":{"name":"Ada"}}`), &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	c := buildCard(t, `card Launch v2 {
  meta {
    title: "Launch"
    keywords: [ "a", "b" ]
  }
  resources {
    font Display { src: "builtin:go-bold" fallback: "builtin:go" }
    color Ink = #0F62FE
  }
  canvas cover size 1200 630 border 4% align justify font Display color Ink background #00000080 {
    "Hello, ${user.name}!"
    ""
    "Bye"
  }
}`, data)

	if c.Name != "Launch" || c.Meta.Title != "Launch" || c.Meta.Creator != "fittext" {
		t.Fatalf("unexpected header/meta: %+v", c)
	}
	if len(c.Meta.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", c.Meta.Keywords)
	}
	if len(c.Fonts) != 1 || c.Fonts[0].Family != "Display" || c.Fonts[0].Src != "builtin:go-bold" || c.Fonts[0].Fallback != "builtin:go" {
		t.Fatalf("unexpected fonts: %+v", c.Fonts)
	}
	if len(c.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(c.Canvases))
	}
	cv := c.Canvases[0]
	if cv.Name != "cover" || cv.Width != 1200 || cv.Height != 630 || cv.BorderPercent != 4 {
		t.Fatalf("unexpected geometry: %+v", cv)
	}
	if cv.Align != layout.AlignJustify || cv.Font != "Display" {
		t.Fatalf("unexpected align/font: %+v", cv)
	}
	if cv.Color != (Color{R: 0x0F, G: 0x62, B: 0xFE, A: 255}) {
		t.Fatalf("named colour not resolved: %+v", cv.Color)
	}
	if cv.Background != (Color{A: 0x80}) {
		t.Fatalf("alpha colour not parsed: %+v", cv.Background)
	}
	if cv.Text != "Hello, Ada!\n\nBye" {
		t.Fatalf("unexpected text: %q", cv.Text)
	}
}

// TestBuildDefaultsAndClamps 验证缺省值与输入边界的截断。
func TestBuildDefaultsAndClamps(t *testing.T) {
	c := buildCard(t, `card T {
  canvas { "plain" }
  canvas size 20 99999 border 50 { "clamped" }
  canvas border 0.5% { "thin" }
}`, nil)
	if len(c.Canvases) != 3 {
		t.Fatalf("expected 3 canvases, got %d", len(c.Canvases))
	}
	def := c.Canvases[0]
	if def.Name != "1" || def.Width != DefaultWidth || def.Height != DefaultHeight || def.BorderPercent != DefaultBorder {
		t.Fatalf("defaults not applied: %+v", def)
	}
	if def.Align != layout.AlignLeft || def.Font != DefaultFont || def.Color != DefaultColor || def.Background != DefaultBackground {
		t.Fatalf("style defaults not applied: %+v", def)
	}
	clamped := c.Canvases[1]
	if clamped.Name != "2" || clamped.Width != MinDimension || clamped.Height != MaxDimension || clamped.BorderPercent != MaxBorder {
		t.Fatalf("clamps not applied: %+v", clamped)
	}
	if thin := c.Canvases[2]; thin.BorderPercent != MinBorder {
		t.Fatalf("border should clamp up to %g, got %g", MinBorder, thin.BorderPercent)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"no canvas":      `card T { meta { title: "x" } }`,
		"bad align":      `card T { canvas align sideways { "x" } }`,
		"bad colour":     `card T { canvas color nope { "x" } }`,
		"missing value":  `card T { canvas size 100 { "x" } }`,
		"unknown param":  `card T { canvas cover shadow 3 { "x" } }`,
		"px border":      `card T { canvas border 4px { "x" } }`,
		"duplicate name": `card T { canvas a { "x" } canvas a { "y" } }`,
	}
	for name, src := range cases {
		doc, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", name, err)
		}
		if _, err := Build(doc, nil); err == nil {
			t.Fatalf("%s: expected build error", name)
		}
	}
	if _, err := Build(nil, nil); err == nil {
		t.Fatalf("nil document should fail")
	}
}

func TestNormalizeText(t *testing.T) {
	// e + 组合重音符 → 预组合 é
	got := NormalizeText("cafe\u0301\r\nline\rend ${who|you}", nil)
	if got != "caf\u00e9\nline\nend you" {
		t.Fatalf("unexpected normalised text: %q", got)
	}
	if strings.Contains(got, "\r") {
		t.Fatalf("carriage returns must be removed")
	}
}

func TestQuickCanvas(t *testing.T) {
	cv, err := QuickCanvas(QuickOptions{
		Text: "hi", Width: 0, Height: 640, Border: 2, Align: "center",
		Color: "#fff", Background: "#123456",
	})
	if err != nil {
		t.Fatalf("QuickCanvas error: %v", err)
	}
	if cv.Width != MinDimension || cv.Height != 640 || cv.Align != layout.AlignCenter || cv.Font != DefaultFont {
		t.Fatalf("unexpected canvas: %+v", cv)
	}
	if cv.Background.Hex() != "#123456" || cv.Color.Hex() != "#ffffff" {
		t.Fatalf("unexpected colours: %s %s", cv.Color.Hex(), cv.Background.Hex())
	}
	if _, err := QuickCanvas(QuickOptions{Text: "x", Align: "up"}); err == nil {
		t.Fatalf("expected align error")
	}
	if _, err := QuickCanvas(QuickOptions{Text: "x", Color: "#zzz"}); err == nil {
		t.Fatalf("expected colour error")
	}
}

func TestCanvasRequest(t *testing.T) {
	cv := NewCanvas("x")
	cv.Text = "hello"
	m := layout.MeasureFunc(func(s string, size float64, _ string) (float64, error) {
		return float64(len(s)) * size * 0.5, nil
	})
	req := cv.Request(m)
	if req.Width != cv.Width || req.Height != cv.Height || req.FontFamily != cv.Font || req.Measurer == nil {
		t.Fatalf("request does not mirror canvas: %+v", req)
	}
	if _, err := layout.Layout(req); err != nil {
		t.Fatalf("default canvas should lay out: %v", err)
	}
}
