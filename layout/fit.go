package layout

import "math"

// FindFontSize 二分搜索使换行结果同时满足宽度与高度约束的最大整数字号。
//
// 搜索区间为 [1, min(maxHeight, MaxFontSize)]；没有任何字号满足时返回 1。
// 该搜索依赖测量宽度随字号单调不减。
func FindFontSize(paragraphs [][]string, maxWidth, maxHeight float64, family string, m Measurer) (int, error) {
	if m == nil {
		return 0, ErrNoMeasurer
	}
	best := 1
	low := 1
	high := int(math.Floor(math.Min(maxHeight, MaxFontSize)))
	probes := 0
	for low <= high {
		mid := (low + high) / 2
		probes++
		lines, maxLineW, err := Wrap(paragraphs, maxWidth, float64(mid), family, m)
		if err != nil {
			return 0, err
		}
		if fits(len(lines), maxLineW, float64(mid), maxWidth, maxHeight) {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	Logger().Debug("layout: font size search",
		"family", family,
		"maxWidth", maxWidth,
		"maxHeight", maxHeight,
		"probes", probes,
		"fontSize", best,
	)
	return best, nil
}

func fits(lineCount int, maxLineW, fontSize, maxWidth, maxHeight float64) bool {
	total := fontSize * LineHeightFactor * float64(lineCount)
	return total <= maxHeight && maxLineW <= maxWidth
}
