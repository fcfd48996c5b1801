package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/fittext/layout"
)

// Source 描述一个字体族的来源：文件路径（相对 baseDir）或 builtin:<name>。
type Source struct {
	Family   string `json:"family"`
	Src      string `json:"src"`
	Fallback string `json:"fallback,omitempty"`
}

// Library 按字体族名解析字体数据，加载结果会被缓存。Library 可并发使用。
type Library struct {
	baseDir string

	mu      sync.Mutex
	sources map[string]Source
	blobs   map[string][]byte
	parsed  map[string]*opentype.Font
}

// NewLibrary creates a library resolving relative font paths against baseDir.
func NewLibrary(baseDir string) *Library {
	return &Library{
		baseDir: baseDir,
		sources: map[string]Source{},
		blobs:   map[string][]byte{},
		parsed:  map[string]*opentype.Font{},
	}
}

// Register 声明字体族的来源；重复注册时后者覆盖前者并清除缓存。
func (l *Library) Register(src Source) {
	if src.Family == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[src.Family] = src
	delete(l.blobs, src.Family)
	delete(l.parsed, src.Family)
}

// Families returns the registered family names in order.
func (l *Library) Families() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.sources))
	for name := range l.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Bytes 返回字体族的字体数据。
//
// 解析顺序：注册的 src → 注册的 fallback → 同名内置字体 → DefaultBuiltin。
// 每次退回都会记录一条 Warn 日志。
func (l *Library) Bytes(family string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if data, ok := l.blobs[family]; ok {
		return data, nil
	}
	data, err := l.resolve(family)
	if err != nil {
		return nil, err
	}
	l.blobs[family] = data
	return data, nil
}

// Font returns the parsed font for family.
func (l *Library) Font(family string) (*opentype.Font, error) {
	l.mu.Lock()
	if f, ok := l.parsed[family]; ok {
		l.mu.Unlock()
		return f, nil
	}
	l.mu.Unlock()

	data, err := l.Bytes(family)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: 解析字体 %s 失败: %w", family, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.parsed[family]; ok {
		return cached, nil
	}
	l.parsed[family] = f
	return f, nil
}

func (l *Library) resolve(family string) ([]byte, error) {
	log := layout.Logger()
	src, ok := l.sources[family]
	if ok {
		data, err := l.read(src.Src)
		if err == nil {
			return data, nil
		}
		log.Warn("fonts: 加载字体失败，尝试 fallback", "family", family, "src", src.Src, "err", err)
		if src.Fallback != "" {
			data, fbErr := l.read(src.Fallback)
			if fbErr == nil {
				return data, nil
			}
			log.Warn("fonts: fallback 加载失败", "family", family, "fallback", src.Fallback, "err", fbErr)
		}
	}
	if data, err := Load(family); err == nil {
		return data, nil
	}
	if !ok {
		log.Warn("fonts: 未声明的字体族，使用内置字体", "family", family, "builtin", DefaultBuiltin)
	}
	return Load(DefaultBuiltin)
}

func (l *Library) read(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("fonts: 字体缺少 src")
	}
	if isBuiltinSrc(src) {
		return Load(src)
	}
	path := src
	if !filepath.IsAbs(path) {
		if l.baseDir == "" {
			return nil, fmt.Errorf("fonts: 未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin:）", src)
		}
		path = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: 读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
