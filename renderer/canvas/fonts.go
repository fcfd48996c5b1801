package canvasrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/fittext/fonts"
	"github.com/ByLCY/fittext/layout"
)

// 画布坐标以 mm 为单位；本包约定 1 个画布单位 == 1 px，并以 1 dot/mm 栅格化。
// 字体系统使用 pt，因此字号在边界处做 px→pt 换算。
const ptPerPx = 72 / 25.4

// toPt 将像素字号转换为 canvas 字体面使用的 pt。
func toPt(px float64) float64 { return px * ptPerPx }

type faceKey struct {
	family string
	size   float64
	color  color.NRGBA
}

// fontSet 按需加载 canvas.FontFamily 并缓存字体面。
// fontSet 不可并发使用：Measurer 与每次 Render 各自持有一份，只共享 fonts.Library 中的字节数据。
type fontSet struct {
	lib      *fonts.Library
	families map[string]*canvas.FontFamily
	faces    map[faceKey]*canvas.FontFace
}

func newFontSet(lib *fonts.Library) *fontSet {
	return &fontSet{
		lib:      lib,
		families: map[string]*canvas.FontFamily{},
		faces:    map[faceKey]*canvas.FontFace{},
	}
}

func (s *fontSet) face(family string, sizePx float64, col color.NRGBA) (*canvas.FontFace, error) {
	key := faceKey{family: family, size: sizePx, color: col}
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	fam, err := s.family(family)
	if err != nil {
		return nil, err
	}
	f := fam.Face(toPt(sizePx), col, canvas.FontRegular, canvas.FontNormal)
	s.faces[key] = f
	return f, nil
}

func (s *fontSet) family(name string) (*canvas.FontFamily, error) {
	if fam, ok := s.families[name]; ok {
		return fam, nil
	}
	data, err := s.lib.Bytes(name)
	if err != nil {
		return nil, err
	}
	fam := canvas.NewFontFamily(name)
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		layout.Logger().Warn("canvas: 加载字体失败，使用内置字体", "family", name, "err", err)
		fam, err = s.fallback()
		if err != nil {
			return nil, err
		}
	}
	s.families[name] = fam
	return fam, nil
}

func (s *fontSet) fallback() (*canvas.FontFamily, error) {
	data, err := fonts.Load(fonts.DefaultBuiltin)
	if err != nil {
		return nil, err
	}
	fam := canvas.NewFontFamily("fittext-fallback")
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	return fam, nil
}
