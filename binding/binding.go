// Package binding 实现模板文本中 ${path.to.value} 形式的数据插值。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Binder 控制插值时缺失值的处理方式。Missing 为空时保留原占位符。
type Binder struct {
	Missing func(path string) string
}

// Bracket 把缺失路径显示为 [path]，让缺失数据在成品中可见。
func Bracket(path string) string { return "[" + path + "]" }

// Interpolate 替换 text 中的全部表达式，路径不存在时交给 Missing 处理。
func (b Binder) Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok && val != nil {
			return format(val)
		}
		if b.Missing != nil {
			return b.Missing(path)
		}
		return match
	})
}

// Lookup 按 a.b[0].c 形式的路径在 data 中取值。
func Lookup(data any, path string) (any, bool) {
	steps, ok := parsePath(path)
	if !ok || data == nil {
		return nil, false
	}
	current := data
	for _, st := range steps {
		if current, ok = st.descend(current); !ok {
			return nil, false
		}
	}
	return current, true
}

// step 是路径中的一级：映射键或切片下标。
type step struct {
	key   string
	index int // key 为空时有效
}

func parsePath(path string) ([]step, bool) {
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(segment, "[")
		if key != "" {
			steps = append(steps, step{key: key})
		}
		if rest == "" {
			continue
		}
		// rest 形如 "0]" 或 "0][1]"。
		for _, raw := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			idx, err := strconv.Atoi(raw)
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: idx})
		}
	}
	return steps, len(steps) > 0
}

func (st step) descend(current any) (any, bool) {
	if st.key != "" {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[st.key]
			return v, ok
		case map[string]string:
			v, ok := c[st.key]
			return v, ok
		}
		return nil, false
	}
	switch c := current.(type) {
	case []any:
		return at(c, st.index)
	case []string:
		return at(c, st.index)
	case []map[string]any:
		return at(c, st.index)
	}
	return nil, false
}

func at[T any](items []T, i int) (any, bool) {
	if i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
