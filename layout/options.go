package layout

// Measurer 负责测量文本在给定字号（px）与字体族下的渲染宽度（px）。
//
// 实现通常绑定一个具体的字体后端，且不保证并发安全：每个调用方（goroutine）应持有自己的实例。
type Measurer interface {
	Measure(text string, fontSize float64, family string) (float64, error)
}

// MeasureFunc adapts an ordinary function to the Measurer interface.
type MeasureFunc func(text string, fontSize float64, family string) (float64, error)

// Measure calls f(text, fontSize, family).
func (f MeasureFunc) Measure(text string, fontSize float64, family string) (float64, error) {
	return f(text, fontSize, family)
}

const (
	// LineHeightFactor 是固定行高倍数。
	LineHeightFactor = 1.2
	// MaxFontSize 是字号搜索的上限，与画布大小无关。
	MaxFontSize = 1000
	// edgePaddingFactor 乘以字号得到非两端对齐行的宽度内缩，避免字形贴边。
	edgePaddingFactor = 0.1
)
