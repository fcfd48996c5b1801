package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/fittext/card"
	"github.com/ByLCY/fittext/layout"
)

// Job 是一次渲染所需的全部输入：画布参数（颜色、尺寸）、排版结果与文档元信息。
type Job struct {
	Canvas card.Canvas
	Meta   card.Meta
	Layout *layout.Result
}

// Renderer 将排版结果输出为最终文件，例如 PNG、PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(job Job) ([]byte, error)
}

// Format 是导出格式。
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
)

// ParseFormat accepts a format name or extension, with or without the leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("renderer: 不支持的导出格式 %q", s)
	}
}

// FormatFromPath 根据输出文件扩展名推断格式，无法识别时返回 PNG。
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatPNG
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }
