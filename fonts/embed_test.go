package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, src := range []string{"", "embed:" + Bold, Regular} {
		data, err := Load(src, Regular)
		if err != nil {
			t.Fatalf("加载 %q 失败: %v", src, err)
		}
		if len(data) == 0 {
			t.Fatalf("%q 返回空数据", src)
		}
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, []byte("font"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path, Regular)
	if err != nil || string(data) != "font" {
		t.Fatalf("按路径加载失败: %v", err)
	}
	if _, err := Load("embed:missing", Regular); err == nil {
		t.Fatalf("未知内置字体应返回错误")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "none.ttf"), Regular); err == nil {
		t.Fatalf("不存在的文件应返回错误")
	}
}
