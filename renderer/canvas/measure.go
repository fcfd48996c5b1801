package canvasrenderer

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/fittext/layout"
)

// Measurer 实现 layout.Measurer，宽度由 canvas.FontFace.TextWidth 给出，
// 与 Render 绘制时使用同一套字体与换算。Measurer 不可并发使用。
type Measurer struct {
	fonts *fontSet
}

var _ layout.Measurer = (*Measurer)(nil)

// NewMeasurer returns a measurer for one goroutine.
func (r *Renderer) NewMeasurer() *Measurer {
	return &Measurer{fonts: newFontSet(r.lib)}
}

// Measure implements layout.Measurer.
func (m *Measurer) Measure(text string, fontSize float64, family string) (float64, error) {
	if fontSize <= 0 {
		return 0, fmt.Errorf("canvas: 字号必须为正数，得到 %g", fontSize)
	}
	face, err := m.fonts.face(family, fontSize, color.NRGBA{A: 255})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}
