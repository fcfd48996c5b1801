package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by Layout when the trimmed text is empty.
	ErrEmptyInput = errors.New("layout: 文本为空")

	// ErrMeasurementFailure matches every *MeasurementError via errors.Is.
	ErrMeasurementFailure = errors.New("layout: 文本测量失败")

	// ErrNoMeasurer is returned when a Request carries no Measurer.
	ErrNoMeasurer = errors.New("layout: 缺少测量后端 Measurer")

	// ErrInvalidCanvas is returned for non-positive canvas sizes or a border outside [0,100).
	ErrInvalidCanvas = errors.New("layout: 画布参数无效")
)

// MeasurementError 记录测量后端失败（返回错误或 panic）时的上下文。
type MeasurementError struct {
	Text     string
	FontSize float64
	Family   string
	Err      error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("layout: 测量 %q（%gpx %s）失败: %v", e.Text, e.FontSize, e.Family, e.Err)
}

func (e *MeasurementError) Unwrap() error { return e.Err }

// Is reports true for ErrMeasurementFailure.
func (e *MeasurementError) Is(target error) bool { return target == ErrMeasurementFailure }
