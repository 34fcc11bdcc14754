// Package templates 按服务类别提供合同等样板段落。查找是纯函数且总能返回文本：
// 未登记的类别回退到目录中的 default 条目，目录也没有时回退到内置段落。
package templates

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/dsl"
)

// DefaultTag 是 default 条目的类别名，Classify 无法判断类别时返回它。
const DefaultTag = "default"

// FallbackBody 在目录缺少 default 条目时使用。
const FallbackBody = "${issuer.name} prestará a ${client.name} los servicios descritos en este documento."

//go:embed default.catalog
var defaultCatalog string

// Template 是目录中的一个条目。
type Template struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
	Body     string   `json:"body"`
}

// Provider 是只读的模板目录，可并发使用。
type Provider struct {
	order    []string
	entries  map[string]Template
	fallback Template
}

// Load 从目录文件构建 Provider。
func Load(r io.Reader) (*Provider, error) {
	cat, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析模板目录失败: %w", err)
	}
	p := &Provider{
		entries:  map[string]Template{},
		fallback: Template{Category: DefaultTag, Body: FallbackBody},
	}
	for _, e := range cat.Entries {
		t := Template{Category: normalizeTag(e.Label())}
		if f, ok := e.Lookup("title"); ok {
			t.Title = f.Value.Text()
		}
		if f, ok := e.Lookup("body"); ok {
			t.Body = strings.TrimSpace(f.Value.Text())
		}
		if f, ok := e.Lookup("keywords"); ok {
			for _, kw := range f.Value.List {
				if kw = fold(kw); kw != "" {
					t.Keywords = append(t.Keywords, kw)
				}
			}
		}
		if e.Default {
			if t.Body == "" {
				t.Body = FallbackBody
			}
			p.fallback = t
			continue
		}
		p.order = append(p.order, t.Category)
		p.entries[t.Category] = t
	}
	return p, nil
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
)

// Default 返回内置目录。内置目录由测试保证可解析，解析失败属于程序错误。
func Default() *Provider {
	defaultOnce.Do(func() {
		p, err := Load(strings.NewReader(defaultCatalog))
		if err != nil {
			panic(err)
		}
		defaultProvider = p
	})
	return defaultProvider
}

// Categories 按目录中的顺序返回已登记的类别（不含 default）。
func (p *Provider) Categories() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.order...)
}

// Template 返回类别对应的条目；未登记时返回 default 条目与 false。
func (p *Provider) Template(tag string) (Template, bool) {
	if p == nil {
		return Template{Category: DefaultTag, Body: FallbackBody}, false
	}
	if t, ok := p.entries[normalizeTag(tag)]; ok && t.Body != "" {
		return t, true
	}
	return p.fallback, false
}

// Lookup 返回类别对应的段落原文，从不失败。
func (p *Provider) Lookup(tag string) string {
	t, _ := p.Template(tag)
	return t.Body
}

// Render 返回插值后的段落，缺失的数据显示为 [path]。
func (p *Provider) Render(tag string, data any) string {
	return binding.Binder{Missing: binding.Bracket}.Interpolate(p.Lookup(tag), data)
}

// Classify 通过关键词在自由文本（如标题与描述）中出现的次数推断服务类别。
// 比较时忽略大小写与重音；得分相同取目录中靠前的类别；没有命中返回 DefaultTag。
func (p *Provider) Classify(texts ...string) string {
	if p == nil {
		return DefaultTag
	}
	haystack := fold(strings.Join(texts, " "))
	best, bestScore := DefaultTag, 0
	for _, tag := range p.order {
		score := 0
		for _, kw := range p.entries[tag].Keywords {
			score += strings.Count(haystack, kw)
		}
		if score > bestScore {
			best, bestScore = tag, score
		}
	}
	return best
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// fold 转为小写并去掉组合重音符号。
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
