package card

import (
	"fmt"

	"github.com/ByLCY/fittext/layout"
)

// QuickOptions 对应命令行的快速模式参数（不使用卡片文件）。
type QuickOptions struct {
	Text       string
	Width      int
	Height     int
	Border     float64
	Align      string
	Font       string
	Color      string
	Background string
	Data       any
}

// QuickCanvas builds a single canvas from loose options, applying the same clamps as Build.
func QuickCanvas(opts QuickOptions) (Canvas, error) {
	cv := NewCanvas("1")
	cv.Width = ClampDimension(opts.Width)
	cv.Height = ClampDimension(opts.Height)
	cv.BorderPercent = ClampBorder(opts.Border)

	align, err := layout.ParseAlign(opts.Align)
	if err != nil {
		return Canvas{}, err
	}
	cv.Align = align
	if opts.Font != "" {
		cv.Font = opts.Font
	}
	if opts.Color != "" {
		if cv.Color, err = ParseColor(opts.Color); err != nil {
			return Canvas{}, fmt.Errorf("card: 文本颜色: %w", err)
		}
	}
	if opts.Background != "" {
		if cv.Background, err = ParseColor(opts.Background); err != nil {
			return Canvas{}, fmt.Errorf("card: 背景颜色: %w", err)
		}
	}
	cv.Text = NormalizeText(opts.Text, opts.Data)
	return cv, nil
}
