package layout

// 该文件定义排版请求与结果，供字号搜索、换行、定位、渲染与调试 JSON 共用。

import (
	"fmt"
	"strings"
)

// Align 表示水平对齐方式。
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns the lower-case name used by the DSL and CLI.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return fmt.Sprintf("align(%d)", uint8(a))
	}
}

// MarshalText 让调试 JSON 输出可读的对齐名称。
func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText accepts the same spellings as ParseAlign.
func (a *Align) UnmarshalText(b []byte) error {
	v, err := ParseAlign(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAlign 解析对齐名称，start/end 分别映射为 left/right；空字符串视为 left。
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "start":
		return AlignLeft, nil
	case "center", "centre", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	case "justify", "justified":
		return AlignJustify, nil
	default:
		return AlignLeft, fmt.Errorf("layout: 未知的对齐方式 %q", s)
	}
}

// Request 描述一次排版所需的全部输入。
type Request struct {
	Text          string
	Width         int     // 画布宽度（px），必须为正
	Height        int     // 画布高度（px），必须为正
	BorderPercent float64 // 边距占 min(Width, Height) 的百分比，取值 [0,100)
	Align         Align
	FontFamily    string
	Measurer      Measurer
}

// Line 是换行后的一行文本。Text 为空表示显式段落换行产生的空行。
type Line struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
}

// Blank reports whether the line has no visible content.
func (l Line) Blank() bool { return strings.TrimSpace(l.Text) == "" }

// Words splits the line on single spaces, the same way paragraphs are split.
func (l Line) Words() []string { return strings.Split(l.Text, " ") }

// Segment 是一段需要在 (X, BaselineY) 处绘制的文本。
type Segment struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
}

// PositionedLine 是最终可以直接绘制的一行。
// BaselineY 为垂直居中锚点（textBaseline=middle），Anchor 决定 Segment.X 是左、中还是右锚点。
// MaxWidth > 0 时渲染器需将该行压缩到此宽度以内；两端对齐拆出的单词不做压缩（MaxWidth 为 0）。
type PositionedLine struct {
	BaselineY float64   `json:"baselineY"`
	Anchor    Align     `json:"anchor"`
	MaxWidth  float64   `json:"maxWidth,omitempty"`
	Segments  []Segment `json:"segments"`
}

// Text joins the segments of the line with single spaces.
func (p PositionedLine) Text() string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// Result 保存排版结果。
type Result struct {
	FontSize   int              `json:"fontSize"`
	FontFamily string           `json:"fontFamily"`
	LineHeight float64          `json:"lineHeight"`
	Border     float64          `json:"border"` // 边距（px）
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Align      Align            `json:"align"`
	Lines      []PositionedLine `json:"lines"`
}
