// Package config 从环境变量读取命令行工具的默认配置。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
)

// DefaultMargin 是未配置 FOLIO_MARGIN 时的页边距。
var DefaultMargin = layout.Length{Value: 18, Unit: layout.UnitMM}

// Config 是命令行工具的配置。排版引擎本身不读取任何全局配置，这里的值都作为参数传入。
type Config struct {
	PageSize    string
	Landscape   bool
	Margin      layout.Length // 四边统一边距
	Locale      string
	Currency    string
	TaxRate     *float64 // 未设置时使用文档或引擎默认值
	FontRegular string
	FontBold    string
	Templates   string // 模板目录文件，为空时使用内置目录
	LogLevel    slog.Level
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence.
func Load() *Config {
	return &Config{
		PageSize:    getEnv("FOLIO_PAGE_SIZE", "A4"),
		Landscape:   getEnvBool("FOLIO_LANDSCAPE", false),
		Margin:      getEnvLength("FOLIO_MARGIN", DefaultMargin),
		Locale:      getEnv("FOLIO_LOCALE", ""),
		Currency:    getEnv("FOLIO_CURRENCY", ""),
		TaxRate:     getEnvFloatPtr("FOLIO_TAX_RATE"),
		FontRegular: getEnv("FOLIO_FONT_REGULAR", ""),
		FontBold:    getEnv("FOLIO_FONT_BOLD", ""),
		Templates:   getEnv("FOLIO_TEMPLATES", ""),
		LogLevel:    getEnvLevel("FOLIO_LOG_LEVEL", slog.LevelInfo),
	}
}

// Geometry 按纸张预设、方向与边距构造页面几何，并做一次校验。
func (c *Config) Geometry() (layout.PageGeometry, error) {
	size, ok := layout.LookupPageSize(c.PageSize)
	if !ok {
		return layout.PageGeometry{}, fmt.Errorf("%w: 未知纸张 %q", layout.ErrInvalidGeometry, c.PageSize)
	}
	if c.Landscape {
		size = size.Landscape()
	}
	g := size.Geometry(c.Margin.ToPT())
	if err := g.Validate(); err != nil {
		return layout.PageGeometry{}, err
	}
	return g, nil
}

// ApplyDefaults 为文档中缺失的 locale、货币与税率填入配置值，文档自身的值优先。
func (c *Config) ApplyDefaults(m *document.Model) {
	if strings.TrimSpace(m.Locale) == "" && c.Locale != "" {
		m.Locale = c.Locale
	}
	if strings.TrimSpace(m.Currency) == "" && c.Currency != "" {
		m.Currency = c.Currency
	}
	if m.TaxRatePercent == nil && c.TaxRate != nil {
		rate := *c.TaxRate
		m.TaxRatePercent = &rate
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvLength(key string, def layout.Length) layout.Length {
	if v := os.Getenv(key); v != "" {
		l, err := layout.ParseLength(v)
		if err == nil {
			return l
		}
	}
	return def
}

func getEnvFloatPtr(key string) *float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return &f
		}
	}
	return nil
}

func getEnvLevel(key string, def slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return def
}
