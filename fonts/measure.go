package fonts

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/fittext/layout"
)

// maxCachedFaces bounds the per-measurer face cache; a layout probes about a dozen sizes.
const maxCachedFaces = 64

type faceKey struct {
	family string
	size   float64
}

// Measurer 使用 x/image/font/opentype 测量文本宽度。
//
// 字号按 72 DPI 创建字体面，因此 1pt == 1px。Measurer 缓存字体面，不可并发使用；
// 每个 goroutine 应通过 NewMeasurer 创建自己的实例，底层 Library 可以共享。
type Measurer struct {
	lib   *Library
	faces map[faceKey]font.Face
}

var _ layout.Measurer = (*Measurer)(nil)

// NewMeasurer returns a measurer reading fonts from lib.
func NewMeasurer(lib *Library) *Measurer {
	return &Measurer{lib: lib, faces: map[faceKey]font.Face{}}
}

// Measure implements layout.Measurer.
func (m *Measurer) Measure(text string, fontSize float64, family string) (float64, error) {
	if fontSize <= 0 {
		return 0, fmt.Errorf("fonts: 字号必须为正数，得到 %g", fontSize)
	}
	face, err := m.face(family, fontSize)
	if err != nil {
		return 0, err
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64, nil
}

// Close releases the cached faces.
func (m *Measurer) Close() error {
	var first error
	for k, f := range m.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(m.faces, k)
	}
	return first
}

func (m *Measurer) face(family string, size float64) (font.Face, error) {
	key := faceKey{family: family, size: size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	if len(m.faces) >= maxCachedFaces {
		_ = m.Close()
	}
	parsed, err := m.lib.Font(family)
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: 创建字体面 %s %gpx 失败: %w", family, size, err)
	}
	m.faces[key] = f
	return f, nil
}
