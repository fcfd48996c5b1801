package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa 形式的颜色。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	alpha := uint8(255)
	if len(v) == 9 {
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("card: 颜色值 %s 无法解析", value)
		}
		alpha = uint8(a)
		v = v[:7]
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("card: 颜色值 %s 无法解析: %w", value, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// resolveColor 先查资源中的命名颜色，再按十六进制解析。
func resolveColor(value string, named map[string]Color) (Color, error) {
	if c, ok := named[value]; ok {
		return c, nil
	}
	return ParseColor(value)
}
