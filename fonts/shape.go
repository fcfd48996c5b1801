package fonts

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/fittext/layout"
)

// ShapingMeasurer 通过 HarfBuzz 整形（go-text/typesetting）测量文本，
// 计入连字、字偶距与复杂文字的字形替换。
//
// HarfbuzzShaper 与 font.Face 都不可并发使用，因此 ShapingMeasurer 同样每个 goroutine 一个。
type ShapingMeasurer struct {
	lib    *Library
	shaper shaping.HarfbuzzShaper
	faces  map[string]*gtfont.Face
}

var _ layout.Measurer = (*ShapingMeasurer)(nil)

// NewShapingMeasurer returns a shaping measurer reading fonts from lib.
func NewShapingMeasurer(lib *Library) *ShapingMeasurer {
	return &ShapingMeasurer{lib: lib, faces: map[string]*gtfont.Face{}}
}

// Measure implements layout.Measurer.
func (m *ShapingMeasurer) Measure(text string, fontSize float64, family string) (float64, error) {
	if fontSize <= 0 {
		return 0, fmt.Errorf("fonts: 字号必须为正数，得到 %g", fontSize)
	}
	if text == "" {
		return 0, nil
	}
	face, err := m.face(family)
	if err != nil {
		return 0, err
	}
	runes := []rune(text)
	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(fontSize * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	})
	adv := out.Advance
	if adv < 0 {
		adv = -adv
	}
	return float64(adv) / 64, nil
}

func (m *ShapingMeasurer) face(family string) (*gtfont.Face, error) {
	if f, ok := m.faces[family]; ok {
		return f, nil
	}
	data, err := m.lib.Bytes(family)
	if err != nil {
		return nil, err
	}
	f, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: 解析字体 %s 失败: %w", family, err)
	}
	m.faces[family] = f
	return f, nil
}

// scriptOf 取第一个非空白字符的书写系统。
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
