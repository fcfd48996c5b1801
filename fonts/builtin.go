package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultBuiltin 是找不到字体时使用的内置字体。
const DefaultBuiltin = "go"

var builtins = map[string][]byte{
	"go":        goregular.TTF,
	"go-bold":   gobold.TTF,
	"go-italic": goitalic.TTF,
	"go-medium": gomedium.TTF,
	"go-mono":   gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:go-bold"、"built-in:go-bold" 或 "go-bold"。
// 字体族名形式（如 "Go Mono"）同样可以识别。
func Load(name string) ([]byte, error) {
	key := builtinKey(name)
	data, ok := builtins[key]
	if !ok {
		return nil, fmt.Errorf("fonts: 找不到内置字体 %s（可用: %s）", name, strings.Join(Builtins(), ", "))
	}
	return data, nil
}

// Builtins lists the names accepted by Load.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isBuiltinSrc(src string) bool {
	return strings.HasPrefix(src, "builtin:") || strings.HasPrefix(src, "built-in:")
}

func builtinKey(name string) string {
	name = strings.TrimPrefix(strings.TrimPrefix(name, "built-in:"), "builtin:")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "-")
}
