package layout

import (
	"fmt"
	"math"
	"strings"
)

// Layout 计算能让文本铺满画布内部区域的最大字号，并给出每一行的绘制位置。
//
// Layout 没有内部状态，可以反复调用；并发调用时每个 goroutine 需使用自己的 Measurer。
// 文本去除空白后为空时返回 ErrEmptyInput；测量后端出错或 panic 时返回 *MeasurementError。
func Layout(req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyInput
	}
	if req.Measurer == nil {
		return nil, ErrNoMeasurer
	}
	if err := validateCanvas(req); err != nil {
		return nil, err
	}

	g := NewGeometry(req.Width, req.Height, req.BorderPercent)
	paragraphs := SplitParagraphs(req.Text)

	size, err := FindFontSize(paragraphs, g.MaxWidth, g.MaxHeight, req.FontFamily, req.Measurer)
	if err != nil {
		return nil, fmt.Errorf("layout: 字号搜索失败: %w", err)
	}
	lines, _, err := Wrap(paragraphs, g.MaxWidth, float64(size), req.FontFamily, req.Measurer)
	if err != nil {
		return nil, fmt.Errorf("layout: 换行失败: %w", err)
	}
	placed, err := Place(lines, size, req.Align, req.Width, req.Height, req.BorderPercent, req.FontFamily, req.Measurer)
	if err != nil {
		return nil, fmt.Errorf("layout: 定位失败: %w", err)
	}

	return &Result{
		FontSize:   size,
		FontFamily: req.FontFamily,
		LineHeight: float64(size) * LineHeightFactor,
		Border:     g.Border,
		Width:      req.Width,
		Height:     req.Height,
		Align:      req.Align,
		Lines:      placed,
	}, nil
}

func validateCanvas(req Request) error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: 尺寸 %dx%d", ErrInvalidCanvas, req.Width, req.Height)
	}
	if math.IsNaN(req.BorderPercent) || req.BorderPercent < 0 || req.BorderPercent >= 100 {
		return fmt.Errorf("%w: 边距 %g%%", ErrInvalidCanvas, req.BorderPercent)
	}
	if req.Align > AlignJustify {
		return fmt.Errorf("%w: 对齐方式 %s", ErrInvalidCanvas, req.Align)
	}
	return nil
}
