package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-aware lengths and the canvas geometry derived from the border.

// Unit represents the original unit of a length value as written in a card file or flag.
type Unit int

const (
	UnitNone    Unit = iota // bare numbers
	UnitPX                  // pixels
	UnitPercent             // percent of a reference length
)

// String returns the suffix used when the unit is written out.
func (u Unit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Resolve converts the length to pixels. Percentages are taken of reference;
// bare numbers are treated as pixels.
func (l Length) Resolve(reference float64) float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100 * reference
	}
	return l.Value
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength 解析 "12"、"12px"、"2.5%" 形式的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("layout: 长度为空")
	}
	unit := UnitNone
	switch {
	case strings.HasSuffix(v, "px"):
		unit = UnitPX
		v = strings.TrimSpace(strings.TrimSuffix(v, "px"))
	case strings.HasSuffix(v, "%"):
		unit = UnitPercent
		v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("layout: 无法解析长度 %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// Geometry 记录由画布尺寸与边距百分比推导出的内部区域（单位 px）。
type Geometry struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Border    float64 `json:"border"`
	MaxWidth  float64 `json:"maxWidth"`
	MaxHeight float64 `json:"maxHeight"`
}

// NewGeometry computes border = pct/100 * min(width, height) and the interior size.
func NewGeometry(width, height int, borderPercent float64) Geometry {
	w, h := float64(width), float64(height)
	border := Length{Value: borderPercent, Unit: UnitPercent}.Resolve(math.Min(w, h))
	return Geometry{
		Width:     w,
		Height:    h,
		Border:    border,
		MaxWidth:  w - 2*border,
		MaxHeight: h - 2*border,
	}
}

// AnchorX 返回对齐方式对应的水平锚点；两端对齐按左对齐处理。
func (g Geometry) AnchorX(a Align) float64 {
	switch a {
	case AlignCenter:
		return g.Width / 2
	case AlignRight:
		return g.Width - g.Border
	default:
		return g.Border
	}
}
