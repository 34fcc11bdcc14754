package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/ByLCY/folio/config"
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	textrenderer "github.com/ByLCY/folio/renderer/text"
	"github.com/ByLCY/folio/templates"
)

// autoCategory 表示根据标题与描述自动判断服务类别。
const autoCategory = "auto"

type options struct {
	input    string
	output   string
	text     string
	debug    string
	category string
}

func main() {
	envFile := flag.String("env", "", "额外加载的 .env 文件")
	var opts options
	flag.StringVar(&opts.input, "in", "examples/invoice.json", "文档 JSON 路径")
	flag.StringVar(&opts.output, "out", "output/invoice.pdf", "PDF 输出路径")
	flag.StringVar(&opts.text, "text", "", "纯文本输出路径")
	flag.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.category, "category", "", "条款模板类别，auto 表示自动判断")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "加载 %s 失败: %v\n", *envFile, err)
			os.Exit(1)
		}
	}
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(opts, cfg, logger); err != nil {
		logger.Error("生成文档失败", "err", err)
		os.Exit(1)
	}
	logger.Info("已生成 PDF", "path", opts.output)
}

// run 串联读取、条款填充、布局与渲染。
func run(opts options, cfg *config.Config, logger *slog.Logger) error {
	model, err := readModel(opts.input)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults(model)

	if opts.category != "" && strings.TrimSpace(model.Terms) == "" {
		provider, err := loadTemplates(cfg.Templates)
		if err != nil {
			return err
		}
		tag, err := resolveCategory(provider, opts.category, model)
		if err != nil {
			return err
		}
		normalized := model.Normalize()
		model.Terms = provider.Render(tag, normalized.Bindings())
		logger.Debug("已填充条款", "category", tag)
	}

	geometry, err := cfg.Geometry()
	if err != nil {
		return err
	}

	pdfRenderer := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Regular: canvasrenderer.Resource{Path: cfg.FontRegular},
		Bold:    canvasrenderer.Resource{Path: cfg.FontBold},
	})
	result, err := layout.Build(model, geometry, layout.Options{Measurer: pdfRenderer, Logger: logger})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	logger.Info("布局完成", "pages", len(result.Pages), "warnings", len(result.Warnings))

	if opts.debug != "" {
		if err := ensureDir(opts.debug); err != nil {
			return err
		}
		if err := layout.WriteDebugJSON(result, opts.debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if opts.text != "" {
		out, err := textrenderer.New().Render(result)
		if err != nil {
			return fmt.Errorf("渲染纯文本失败: %w", err)
		}
		if err := writeFile(opts.text, out); err != nil {
			return err
		}
	}

	pdfBytes, err := pdfRenderer.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	return writeFile(opts.output, pdfBytes)
}

func readModel(path string) (*document.Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开文档 %s: %w", path, err)
	}
	defer file.Close()
	return document.Decode(file)
}

func loadTemplates(path string) (*templates.Provider, error) {
	if path == "" {
		return templates.Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开模板目录 %s: %w", path, err)
	}
	defer file.Close()
	return templates.Load(file)
}

// resolveCategory 把 -category 参数解析为目录中的类别；auto 按标题与描述自动判断。
func resolveCategory(provider *templates.Provider, category string, model *document.Model) (string, error) {
	if strings.EqualFold(category, autoCategory) {
		return provider.Classify(model.Title, model.Description), nil
	}
	tag := strings.ToLower(strings.TrimSpace(category))
	if tag == templates.DefaultTag || slices.Contains(provider.Categories(), tag) {
		return tag, nil
	}
	return "", fmt.Errorf("未知的条款类别 %q，可用类别: %s", category, strings.Join(provider.Categories(), ", "))
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
