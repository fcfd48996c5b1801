package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/fittext/card"
	"github.com/ByLCY/fittext/fonts"
	"github.com/ByLCY/fittext/layout"
	"github.com/ByLCY/fittext/renderer"
)

const defaultJPEGQuality = 92

// Renderer draws layout results via github.com/tdewolff/canvas.
// Renderer 本身无可变状态，可被多个 goroutine 同时调用 Render；
// 字体面缓存由每次 Render 与每个 Measurer 各自持有。
type Renderer struct {
	lib         *fonts.Library
	format      renderer.Format
	jpegQuality int
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir     string
	Library     *fonts.Library // 为空时以 BaseDir 新建
	Format      renderer.Format
	JPEGQuality int
}

// NewRenderer creates a PNG renderer rooted at baseDir for resolving font files.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with an injected font library and output format.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		lib:         opts.Library,
		format:      opts.Format,
		jpegQuality: opts.JPEGQuality,
	}
	if r.lib == nil {
		r.lib = fonts.NewLibrary(opts.BaseDir)
	}
	if r.format == "" {
		r.format = renderer.FormatPNG
	}
	if r.jpegQuality <= 0 || r.jpegQuality > 100 {
		r.jpegQuality = defaultJPEGQuality
	}
	return r
}

// Render draws the job and encodes it in the configured format.
func (r *Renderer) Render(job renderer.Job) ([]byte, error) {
	res := job.Layout
	if res == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if res.Width <= 0 || res.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", res.Width, res.Height)
	}

	w, h := float64(res.Width), float64(res.Height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	// 背景铺满整张画布
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(job.Canvas.Background.NRGBA())
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	if err := r.drawLines(ctx, job.Canvas, res); err != nil {
		return nil, err
	}
	return r.encode(c, job.Meta)
}

func (r *Renderer) drawLines(ctx *canvas.Context, cv card.Canvas, res *layout.Result) error {
	if len(res.Lines) == 0 || res.FontSize <= 0 {
		return nil
	}
	fs := newFontSet(r.lib)
	face, err := fs.face(res.FontFamily, float64(res.FontSize), cv.Color.NRGBA())
	if err != nil {
		return fmt.Errorf("加载字体 %q 失败: %w", res.FontFamily, err)
	}

	// 布局给出的 y 是行的垂直中点，这里换算成字母基线。
	metrics := face.Metrics()
	shift := (metrics.Ascent - math.Abs(metrics.Descent)) / 2

	for _, line := range res.Lines {
		baseline := line.BaselineY + shift
		for _, seg := range line.Segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			drawSegment(ctx, face, seg, line.Anchor, line.MaxWidth, baseline)
		}
	}
	return nil
}

// drawSegment 在 (x, baseline) 处按锚点绘制文本；超过 maxWidth 时水平压缩。
func drawSegment(ctx *canvas.Context, face *canvas.FontFace, seg layout.Segment, anchor layout.Align, maxWidth, baseline float64) {
	var textAlign canvas.TextAlign
	switch anchor {
	case layout.AlignCenter:
		textAlign = canvas.Center
	case layout.AlignRight:
		textAlign = canvas.Right
	default:
		textAlign = canvas.Left
	}
	text := canvas.NewTextLine(face, seg.Text, textAlign)

	if maxWidth > 0 {
		if width := face.TextWidth(seg.Text); width > maxWidth {
			sx := maxWidth / width
			ctx.Push()
			ctx.ComposeView(canvas.Identity.Translate(seg.X, baseline).Scale(sx, 1).Translate(-seg.X, -baseline))
			ctx.DrawText(seg.X, baseline, text)
			ctx.Pop()
			return
		}
	}
	ctx.DrawText(seg.X, baseline, text)
}

func (r *Renderer) encode(c *canvas.Canvas, meta card.Meta) ([]byte, error) {
	var buf bytes.Buffer
	switch r.format {
	case renderer.FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	case renderer.FormatJPEG:
		img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.jpegQuality}); err != nil {
			return nil, fmt.Errorf("写入 JPEG 失败: %w", err)
		}
	case renderer.FormatPDF:
		writer := pdf.New(&buf, c.W, c.H, nil)
		applyMeta(writer, meta)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatSVG:
		writer := svg.New(&buf, c.W, c.H, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的导出格式 %q", r.format)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta card.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}
