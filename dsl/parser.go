// Package dsl 解析模板目录文件：按服务类别登记合同条款等样板文本。
//
//	catalog contracts {
//	  category design {
//	    title: "Diseño gráfico"
//	    keywords: ["logo", "branding"]
//	    body: "Primer párrafo. " +
//	          "Continúa aquí."
//	  }
//	  default { body: "Texto genérico." }
//	}
package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	catalogLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][,:;+]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	catalogParser = participle.MustBuild[Catalog](
		participle.Lexer(catalogLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.Unquote("String"),
	)
)

// Catalog is the root AST node of a template catalog file.
type Catalog struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'catalog' @Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Entry is either a named category or the default entry.
type Entry struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Default bool           `parser:"(  @'default'"`
	Name    string         `parser:" | 'category' @Ident )"`
	Fields  []*Field       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Field uses colon syntax (key: value).
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':' Newline*"`
	Value *Value         `parser:"@@"`
}

// Value is a string (optionally concatenated with '+') or a list of strings.
type Value struct {
	Parts []string `parser:"  @String ( '+' Newline* @String )*"`
	List  []string `parser:"| '[' Newline* ( @String Newline* ( ',' Newline* @String Newline* )* )? ']'"`
}

// IsList reports whether the value was written as a list.
func (v *Value) IsList() bool { return v != nil && v.Parts == nil }

// Text joins the concatenated parts of a string value.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	return strings.Join(v.Parts, "")
}

// Lookup returns the field named key, if present.
func (e *Entry) Lookup(key string) (*Field, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return nil, false
}

// Label returns the entry name, "default" for the default entry.
func (e *Entry) Label() string {
	if e.Default {
		return "default"
	}
	return e.Name
}

// Parse parses catalog content from an io.Reader.
func Parse(r io.Reader) (*Catalog, error) {
	cat, err := catalogParser.Parse("", r)
	if err != nil {
		return nil, err
	}
	if err := validate(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// validate 检查重复的类别、重复的 default 以及类型不符的字段。
func validate(cat *Catalog) error {
	seen := map[string]lexer.Position{}
	for _, e := range cat.Entries {
		label := strings.ToLower(e.Label())
		if prev, ok := seen[label]; ok {
			return fmt.Errorf("%s: 重复的条目 %q（首次定义于 %s）", e.Pos, e.Label(), prev)
		}
		seen[label] = e.Pos
		keys := map[string]bool{}
		for _, f := range e.Fields {
			if keys[f.Key] {
				return fmt.Errorf("%s: 条目 %q 中重复的字段 %q", f.Pos, e.Label(), f.Key)
			}
			keys[f.Key] = true
			if f.Key == "keywords" && !f.Value.IsList() {
				return fmt.Errorf("%s: keywords 必须是字符串列表", f.Pos)
			}
			if f.Key != "keywords" && f.Value.IsList() {
				return fmt.Errorf("%s: 字段 %q 必须是字符串", f.Pos, f.Key)
			}
		}
	}
	return nil
}
