package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// DebugDump 是调试 JSON 的顶层结构，可包含多个画布的排版结果。
type DebugDump struct {
	Canvases map[string]*Result `json:"canvases"`
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(dump DebugDump, path string) error {
	if len(dump.Canvases) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("layout: 序列化调试 JSON 失败: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
