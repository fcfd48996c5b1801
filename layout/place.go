package layout

import (
	"math"
	"strings"
)

// Place 将换行结果转换为逐行绘制指令。
//
// 各行在画布内垂直居中，BaselineY 为行的中线。两端对齐只作用于非末行且非空行；
// 单词数为 1 的两端对齐行、末行以及空行都按左对齐输出。两端对齐时超出右边距的单词会被直接丢弃。
func Place(lines []Line, fontSize int, align Align, width, height int, borderPercent float64, family string, m Measurer) ([]PositionedLine, error) {
	g := NewGeometry(width, height, borderPercent)
	size := float64(fontSize)
	lineHeight := size * LineHeightFactor
	startY := (float64(height)-lineHeight*float64(len(lines)))/2 + lineHeight/2
	clamp := math.Max(g.MaxWidth-size*edgePaddingFactor, 0)

	out := make([]PositionedLine, 0, len(lines))
	for i, line := range lines {
		y := startY + float64(i)*lineHeight
		last := i == len(lines)-1

		if align == AlignJustify && !last && !line.Blank() {
			words := line.Words()
			if len(words) > 1 {
				if m == nil {
					return nil, ErrNoMeasurer
				}
				pl, err := justify(words, y, size, g, float64(width), family, m)
				if err != nil {
					return nil, err
				}
				out = append(out, pl)
				continue
			}
		}

		anchor := align
		if anchor == AlignJustify {
			anchor = AlignLeft
		}
		out = append(out, PositionedLine{
			BaselineY: y,
			Anchor:    anchor,
			MaxWidth:  clamp,
			Segments:  []Segment{{Text: line.Text, X: g.AnchorX(anchor)}},
		})
	}
	return out, nil
}

// overflowEpsilon 吸收两端对齐累加 spaceWidth 时的浮点误差，避免末词因 1ulp 被误丢。
const overflowEpsilon = 1e-6

func justify(words []string, y, size float64, g Geometry, width float64, family string, m Measurer) (PositionedLine, error) {
	packed, err := measure(m, strings.Join(words, ""), size, family)
	if err != nil {
		return PositionedLine{}, err
	}
	spaceWidth := (g.MaxWidth - packed) / float64(len(words)-1)
	right := width - g.Border

	pl := PositionedLine{BaselineY: y, Anchor: AlignLeft}
	x := g.Border
	for i, word := range words {
		w, err := measure(m, word, size, family)
		if err != nil {
			return PositionedLine{}, err
		}
		if x+w > right+overflowEpsilon {
			continue
		}
		pl.Segments = append(pl.Segments, Segment{Text: word, X: x})
		if i < len(words)-1 {
			x += w + spaceWidth
		}
	}
	return pl, nil
}
