package card

// 该文件定义卡片描述与默认值，供 DSL 编译、命令行快速模式与渲染器共用。

import (
	"fmt"
	"image/color"

	"github.com/ByLCY/fittext/fonts"
	"github.com/ByLCY/fittext/layout"
)

// 输入边界：与原编辑界面一致的默认值与取值范围。
const (
	DefaultWidth  = 1000
	DefaultHeight = 1000
	MinDimension  = 100
	MaxDimension  = 5000

	DefaultBorder = 2.0
	MinBorder     = 1.0
	MaxBorder     = 20.0

	DefaultFont = "Body"
)

var (
	DefaultColor      = Color{R: 255, G: 255, B: 255, A: 255}
	DefaultBackground = Color{R: 0, G: 0, B: 0, A: 255}
)

// Card 是一个卡片文件编译后的结果。
type Card struct {
	Name     string           `json:"name"`
	Meta     Meta             `json:"meta"`
	Fonts    []fonts.Source   `json:"fonts"`
	Colors   map[string]Color `json:"colors"`
	Canvases []Canvas         `json:"canvases"`
}

// Meta 保存导出文件（PDF）使用的元信息。
type Meta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Canvas 描述一张输出图片。
type Canvas struct {
	Name          string       `json:"name"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	BorderPercent float64      `json:"borderPercent"`
	Align         layout.Align `json:"align"`
	Font          string       `json:"font"`
	Color         Color        `json:"color"`
	Background    Color        `json:"background"`
	Text          string       `json:"text"`
}

// NewCanvas returns a canvas carrying every default.
func NewCanvas(name string) Canvas {
	return Canvas{
		Name:          name,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		BorderPercent: DefaultBorder,
		Align:         layout.AlignLeft,
		Font:          DefaultFont,
		Color:         DefaultColor,
		Background:    DefaultBackground,
	}
}

// Request 将画布参数交给排版引擎；m 由调用方按 goroutine 提供。
func (c Canvas) Request(m layout.Measurer) layout.Request {
	return layout.Request{
		Text:          c.Text,
		Width:         c.Width,
		Height:        c.Height,
		BorderPercent: c.BorderPercent,
		Align:         c.Align,
		FontFamily:    c.Font,
		Measurer:      m,
	}
}

// Color 采用 0-255 的 RGBA 数值（非预乘）。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA converts to the image/color type used by renderers.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex formats the colour as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
