package layout

import (
	"errors"
	"fmt"
	"strings"
)

// SplitParagraphs 先按换行切分段落，再按单个空格切分单词。
// 连续空格会产生空单词，与测量后端看到的文本保持一致；行尾的 \r 会被去掉。
func SplitParagraphs(text string) [][]string {
	paras := strings.Split(text, "\n")
	out := make([][]string, 0, len(paras))
	for _, p := range paras {
		out = append(out, strings.Split(strings.TrimSuffix(p, "\r"), " "))
	}
	return out
}

// Wrap 在给定字号下对段落做贪心换行。
//
// 每个段落从新的一行开始；没有产生任何内容的段落（连续换行）输出一个空行。
// 单个超宽单词独占一行并允许溢出，不做断字。
// 第二个返回值是所有输出行中测得的最大宽度。
func Wrap(paragraphs [][]string, maxWidth, fontSize float64, family string, m Measurer) ([]Line, float64, error) {
	if m == nil {
		return nil, 0, ErrNoMeasurer
	}
	var (
		lines    []Line
		maxLineW float64
	)
	flush := func(text string) error {
		w, err := measure(m, text, fontSize, family)
		if err != nil {
			return err
		}
		lines = append(lines, Line{Text: text, Width: w})
		if w > maxLineW {
			maxLineW = w
		}
		return nil
	}

	for _, words := range paragraphs {
		start := len(lines)
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			w, err := measure(m, candidate, fontSize, family)
			if err != nil {
				return nil, 0, err
			}
			if w > maxWidth && current != "" {
				if err := flush(current); err != nil {
					return nil, 0, err
				}
				current = word
				continue
			}
			current = candidate
		}
		if current != "" {
			if err := flush(current); err != nil {
				return nil, 0, err
			}
		}
		if len(lines) == start {
			lines = append(lines, Line{})
		}
	}
	return lines, maxLineW, nil
}

// measure 调用测量后端，并把错误与 panic 统一包装为 *MeasurementError。
func measure(m Measurer, text string, fontSize float64, family string) (w float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			w = 0
			err = &MeasurementError{Text: text, FontSize: fontSize, Family: family, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	w, err = m.Measure(text, fontSize, family)
	if err != nil {
		var me *MeasurementError
		if errors.As(err, &me) {
			return 0, err
		}
		return 0, &MeasurementError{Text: text, FontSize: fontSize, Family: family, Err: err}
	}
	return w, nil
}
