// Package fonts 提供内置字体（Latin Modern Sans），供 PDF 渲染与字体度量使用。
package fonts

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// 内置字体名称。
const (
	Regular = "lmsans10-regular"
	Bold    = "lmsans10-bold"
)

var builtin = map[string][]byte{
	Regular: lmsans10regular.TTF,
	Bold:    lmsans10bold.TTF,
}

// Load 返回字体字节数据。src 可写为 "embed:lmsans10-regular"、内置名称或文件路径；
// 为空时返回 fallback 对应的内置字体。
func Load(src, fallback string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		src = fallback
	}
	name := strings.TrimPrefix(src, "embed:")
	if data, ok := builtin[name]; ok {
		return data, nil
	}
	if strings.HasPrefix(src, "embed:") {
		return nil, fmt.Errorf("找不到内置字体 %s", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
