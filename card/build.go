package card

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/fittext/binding"
	"github.com/ByLCY/fittext/dsl"
	"github.com/ByLCY/fittext/fonts"
	"github.com/ByLCY/fittext/layout"
)

// Build 根据卡片 DSL 生成画布列表；data 为 ${...} 插值使用的 JSON 数据。
func Build(doc *dsl.Document, data any) (*Card, error) {
	if doc == nil {
		return nil, fmt.Errorf("card: 文档为空")
	}
	c := &Card{
		Name:   doc.Name,
		Meta:   collectMeta(doc),
		Colors: map[string]Color{},
	}
	if err := collectResources(doc, c); err != nil {
		return nil, err
	}

	sections := doc.Canvases()
	if len(sections) == 0 {
		return nil, fmt.Errorf("card: 文档中缺少 canvas 段落")
	}
	seen := map[string]bool{}
	for i, section := range sections {
		cv, err := buildCanvas(section, i, c.Colors, data)
		if err != nil {
			return nil, err
		}
		if seen[cv.Name] {
			return nil, fmt.Errorf("card: canvas 名称 %q 重复（%s）", cv.Name, section.Pos)
		}
		seen[cv.Name] = true
		c.Canvases = append(c.Canvases, cv)
	}
	return c, nil
}

func collectMeta(doc *dsl.Document) Meta {
	meta := Meta{Creator: "fittext"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	return meta
}

func collectResources(doc *dsl.Document, c *Card) error {
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			cmd := stmt.Command
			if cmd == nil || len(cmd.Args) == 0 {
				continue
			}
			switch cmd.Name {
			case "font":
				c.Fonts = append(c.Fonts, parseFontResource(cmd))
			case "color":
				name := cmd.Args[0].Value
				raw := cmd.Args[len(cmd.Args)-1].Value
				if len(cmd.Args) < 2 || raw == "=" {
					return fmt.Errorf("card: 颜色 %s 缺少取值（%s）", name, cmd.Pos)
				}
				col, err := ParseColor(raw)
				if err != nil {
					return fmt.Errorf("card: 颜色 %s（%s）: %w", name, cmd.Pos, err)
				}
				c.Colors[name] = col
			}
		}
	}
	return nil
}

func parseFontResource(cmd *dsl.Command) fonts.Source {
	src := fonts.Source{Family: cmd.Args[0].Value}
	if cmd.Block == nil {
		return src
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		switch stmt.Assignment.Key {
		case "src":
			src.Src = valueToString(stmt.Assignment.Value)
		case "fallback":
			src.Fallback = valueToString(stmt.Assignment.Value)
		}
	}
	return src
}

func buildCanvas(section *dsl.CanvasSection, index int, colors map[string]Color, data any) (Canvas, error) {
	cv := NewCanvas(strconv.Itoa(index + 1))
	params := section.Params
	if len(params) > 0 && params[0].Type == "Ident" && !isCanvasKey(params[0].Value) {
		cv.Name = params[0].Value
		params = params[1:]
	}

	arg := func(i int, key string) (string, error) {
		if i >= len(params) {
			return "", fmt.Errorf("card: canvas %s 的 %s 缺少取值（%s）", cv.Name, key, section.Pos)
		}
		return params[i].Value, nil
	}

	for i := 0; i < len(params); i++ {
		key := strings.ToLower(params[i].Value)
		var err error
		switch key {
		case "size":
			var w, h string
			if w, err = arg(i+1, key); err == nil {
				if h, err = arg(i+2, key); err == nil {
					if cv.Width, err = ParseDimension(w); err == nil {
						cv.Height, err = ParseDimension(h)
					}
				}
			}
			i += 2
		case "width", "height":
			var v string
			if v, err = arg(i+1, key); err == nil {
				var d int
				if d, err = ParseDimension(v); err == nil {
					if key == "width" {
						cv.Width = d
					} else {
						cv.Height = d
					}
				}
			}
			i++
		case "border":
			var v string
			if v, err = arg(i+1, key); err == nil {
				cv.BorderPercent, err = ParseBorder(v)
			}
			i++
		case "align":
			var v string
			if v, err = arg(i+1, key); err == nil {
				cv.Align, err = layout.ParseAlign(v)
			}
			i++
		case "font":
			cv.Font, err = arg(i+1, key)
			i++
		case "color", "background", "bg":
			var v string
			if v, err = arg(i+1, key); err == nil {
				var col Color
				if col, err = resolveColor(v, colors); err == nil {
					if key == "color" {
						cv.Color = col
					} else {
						cv.Background = col
					}
				}
			}
			i++
		default:
			err = fmt.Errorf("card: canvas %s 含未知参数 %q（%s）", cv.Name, params[i].Raw, params[i].Pos)
		}
		if err != nil {
			return Canvas{}, err
		}
	}

	cv.Text = NormalizeText(extractText(section.Block), data)
	return cv, nil
}

func isCanvasKey(v string) bool {
	switch strings.ToLower(v) {
	case "size", "width", "height", "border", "align", "font", "color", "background", "bg":
		return true
	}
	return false
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var parts []string
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			parts = append(parts, string(stmt.Text.Value))
		}
	}
	return strings.Join(parts, "\n")
}

// NormalizeText 插值 ${...}，统一换行为 \n，并做 NFC 规范化，保证测量与绘制看到同一串字符。
func NormalizeText(text string, data any) string {
	text = binding.Interpolate(text, data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// ParseDimension 解析画布边长（px），结果限制在 [MinDimension, MaxDimension]。
func ParseDimension(value string) (int, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	if l.Unit == layout.UnitPercent {
		return 0, fmt.Errorf("card: 画布尺寸不支持百分比 %q", value)
	}
	return ClampDimension(int(math.Round(l.Value))), nil
}

// ClampDimension limits a canvas side to [MinDimension, MaxDimension].
func ClampDimension(v int) int {
	return min(max(v, MinDimension), MaxDimension)
}

// ParseBorder 解析边距百分比（"4%" 或 "4"），结果限制在 [MinBorder, MaxBorder]。
func ParseBorder(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	if l.Unit == layout.UnitPX {
		return 0, fmt.Errorf("card: 边距仅支持百分比 %q", value)
	}
	return ClampBorder(l.Value), nil
}

// ClampBorder limits a border percentage to [MinBorder, MaxBorder].
func ClampBorder(v float64) float64 {
	return math.Min(math.Max(v, MinBorder), MaxBorder)
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		if s := valueToString(val); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, v := range val.Array.Values {
		if s := valueToString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
