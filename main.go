package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"

	"github.com/ByLCY/fittext/card"
	"github.com/ByLCY/fittext/dsl"
	"github.com/ByLCY/fittext/fonts"
	"github.com/ByLCY/fittext/layout"
	"github.com/ByLCY/fittext/renderer"
	canvasrenderer "github.com/ByLCY/fittext/renderer/canvas"
)

const summaryUnits = "y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us"

// config 汇总命令行参数。
type config struct {
	input   string
	quick   card.QuickOptions
	output  string
	format  string
	debug   string
	measure string
	workers int
}

// output 是一张已写出的图片。
type output struct {
	Canvas   string
	Path     string
	Size     int
	FontSize int
	Elapsed  time.Duration
}

func main() {
	input := flag.String("in", "", "卡片文件路径（为空时使用 -text 快速模式）")
	text := flag.String("text", "", "快速模式的文本，\\n 表示换行")
	width := flag.Int("width", card.DefaultWidth, "画布宽度（px）")
	height := flag.Int("height", card.DefaultHeight, "画布高度（px）")
	border := flag.Float64("border", card.DefaultBorder, "边距（占宽度的百分比）")
	align := flag.String("align", "left", "对齐方式：left|center|right|justify")
	font := flag.String("font", fonts.DefaultBuiltin, "内置字体名或 TTF/OTF 文件路径")
	color := flag.String("color", card.DefaultColor.Hex(), "文本颜色")
	bg := flag.String("bg", card.DefaultBackground.Hex(), "背景颜色")
	out := flag.String("out", "text-image.png", "输出路径；多个画布时追加 -<画布名>")
	format := flag.String("format", "", "导出格式 png|jpg|pdf|svg，默认按 -out 扩展名推断")
	dataJSON := flag.String("data", "", "绑定到文本的 JSON 数据")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	measure := flag.String("measure", "canvas", "测量后端：canvas|opentype|shaping")
	workers := flag.Int("workers", runtime.NumCPU(), "并发渲染的画布数量上限")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	shortUnits, err := durafmt.DefaultUnitsCoder.Decode(summaryUnits)
	if err != nil {
		log.Fatalf("解析时长单位失败: %v", err)
	}

	if *verbose {
		layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	cfg := config{
		input: *input,
		quick: card.QuickOptions{
			Text:       strings.ReplaceAll(*text, `\n`, "\n"),
			Width:      *width,
			Height:     *height,
			Border:     *border,
			Align:      *align,
			Font:       *font,
			Color:      *color,
			Background: *bg,
			Data:       inputData,
		},
		output:  *out,
		format:  *format,
		debug:   *debug,
		measure: *measure,
		workers: *workers,
	}

	outputs, err := run(cfg)
	if errors.Is(err, layout.ErrEmptyInput) {
		fmt.Println("Please enter some text")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("生成图片失败: %v", err)
	}
	for _, o := range outputs {
		fmt.Printf("已生成 %s（%s，字号 %dpx，耗时 %s）\n",
			o.Path, humanize.Bytes(uint64(o.Size)), o.FontSize,
			durafmt.Parse(o.Elapsed).LimitFirstN(2).Format(shortUnits))
	}
}

// run 串联解析、排版与渲染，返回按画布顺序排列的输出。
func run(cfg config) ([]output, error) {
	c, lib, err := loadCard(cfg)
	if err != nil {
		return nil, err
	}

	format, outPath, err := resolveOutput(cfg.output, cfg.format)
	if err != nil {
		return nil, err
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Library: lib, Format: format})

	newMeasurer, err := measurerFactory(cfg.measure, r, lib)
	if err != nil {
		return nil, err
	}

	workers := cfg.workers
	if workers <= 0 {
		workers = 1
	}
	n := len(c.Canvases)
	results := make([]*layout.Result, n)
	outputs := make([]output, n)
	errs := make([]error, n)

	swg := sizedwaitgroup.New(workers)
	for i := range c.Canvases {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			cv := c.Canvases[i]
			path := outputPath(outPath, cv.Name, n)
			res, o, err := renderCanvas(r, newMeasurer, c.Meta, cv, path)
			if err != nil {
				errs[i] = fmt.Errorf("画布 %q: %w", cv.Name, err)
				return
			}
			results[i], outputs[i] = res, o
		}(i)
	}
	swg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.debug != "" {
		dump := layout.DebugDump{Canvases: map[string]*layout.Result{}}
		for i, cv := range c.Canvases {
			dump.Canvases[cv.Name] = results[i]
		}
		if err := writeDebug(dump, cfg.debug); err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

// measurerFactory 返回测量实现的构造函数与释放函数；每个 goroutine 独占一个测量实例。
func measurerFactory(kind string, r *canvasrenderer.Renderer, lib *fonts.Library) (func() (layout.Measurer, func()), error) {
	switch strings.ToLower(kind) {
	case "", "canvas":
		return func() (layout.Measurer, func()) { return r.NewMeasurer(), func() {} }, nil
	case "opentype":
		return func() (layout.Measurer, func()) {
			m := fonts.NewMeasurer(lib)
			return m, func() { _ = m.Close() }
		}, nil
	case "shaping":
		return func() (layout.Measurer, func()) { return fonts.NewShapingMeasurer(lib), func() {} }, nil
	default:
		return nil, fmt.Errorf("未知的测量后端 %q", kind)
	}
}

func renderCanvas(r *canvasrenderer.Renderer, newMeasurer func() (layout.Measurer, func()), meta card.Meta, cv card.Canvas, path string) (*layout.Result, output, error) {
	start := time.Now()
	m, release := newMeasurer()
	defer release()

	res, err := layout.Layout(cv.Request(m))
	if err != nil {
		return nil, output{}, fmt.Errorf("排版失败: %w", err)
	}
	data, err := r.Render(renderer.Job{Canvas: cv, Meta: meta, Layout: res})
	if err != nil {
		return nil, output{}, fmt.Errorf("渲染失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, output{}, fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, output{}, fmt.Errorf("写入文件失败: %w", err)
	}
	return res, output{
		Canvas:   cv.Name,
		Path:     path,
		Size:     len(data),
		FontSize: res.FontSize,
		Elapsed:  time.Since(start),
	}, nil
}

// loadCard 读取卡片文件，或在快速模式下由参数构造单个画布。
func loadCard(cfg config) (*card.Card, *fonts.Library, error) {
	if cfg.input == "" {
		lib := fonts.NewLibrary(".")
		opts := cfg.quick
		if isFontFile(opts.Font) {
			lib.Register(fonts.Source{Family: card.DefaultFont, Src: opts.Font, Fallback: "builtin:" + fonts.DefaultBuiltin})
			opts.Font = card.DefaultFont
		}
		cv, err := card.QuickCanvas(opts)
		if err != nil {
			return nil, nil, err
		}
		return &card.Card{Name: "quick", Meta: card.Meta{Creator: "fittext"}, Canvases: []card.Canvas{cv}}, lib, nil
	}

	file, err := os.Open(cfg.input)
	if err != nil {
		return nil, nil, fmt.Errorf("无法打开卡片文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, nil, fmt.Errorf("解析卡片失败: %w", err)
	}
	c, err := card.Build(doc, cfg.quick.Data)
	if err != nil {
		return nil, nil, err
	}
	lib := fonts.NewLibrary(filepath.Dir(cfg.input))
	for _, src := range c.Fonts {
		lib.Register(src)
	}
	return c, lib, nil
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc":
		return true
	}
	return false
}

// resolveOutput 确定导出格式，并在输出路径缺少扩展名时补上。
func resolveOutput(path, format string) (renderer.Format, string, error) {
	var f renderer.Format
	if format != "" {
		parsed, err := renderer.ParseFormat(format)
		if err != nil {
			return "", "", err
		}
		f = parsed
	} else {
		f = renderer.FormatFromPath(path)
	}
	if filepath.Ext(path) == "" {
		path += f.Ext()
	}
	return f, path, nil
}

// outputPath 在多画布时生成 <out>-<canvas>.<ext>。
func outputPath(base, canvas string, total int) string {
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + canvas + ext
}

func writeDebug(dump layout.DebugDump, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(dump, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
