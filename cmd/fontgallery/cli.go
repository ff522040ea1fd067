package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/rxxx/fontgallery"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI参数结构
type CLIArgs struct {
	width      int
	height     int
	size       float64
	dpi        float64
	color      string
	background string
	text       string
	fontDir    string
	builtin    bool
	workers    int
	outPath    string
	reportPath string
	viewPath   string
	logPath    string
	noInput    bool
	verbose    bool
}

// 解析命令行参数
func parseArgs(name string, argv []string, stderr io.Writer) (*CLIArgs, error) {
	args := &CLIArgs{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&args.width, "width", fontgallery.DefaultViewportWidth, "视口宽度（像素）")
	fs.IntVar(&args.height, "height", fontgallery.DefaultViewportHeight, "视口高度（像素），方向键每次滚动三分之一")
	fs.Float64Var(&args.size, "size", fontgallery.DefaultPointSize, "示例文本字号")
	fs.Float64Var(&args.dpi, "dpi", fontgallery.DefaultDPI, "渲染 DPI")
	fs.StringVar(&args.color, "color", "#ffffff", "文本颜色")
	fs.StringVar(&args.background, "bg", "#000000", "背景颜色")
	fs.StringVar(&args.text, "text", fontgallery.DefaultSampleText, "示例文本")
	fs.StringVar(&args.fontDir, "font-dir", "", "额外扫描的字体目录")
	fs.BoolVar(&args.builtin, "builtin", false, "只使用内置的 Go 字体，不枚举系统字体")
	fs.IntVar(&args.workers, "workers", runtime.NumCPU(), "并发渲染的 worker 数量")
	fs.StringVar(&args.outPath, "o", "", "把整张画布保存为 PNG")
	fs.StringVar(&args.reportPath, "report", "", "把字体审计结果导出为 .xlsx")
	fs.StringVar(&args.viewPath, "view", "", "交互模式下把当前视口写入该 PNG 文件，而不是输出到终端")
	fs.StringVar(&args.logPath, "log", "", "日志文件路径（交互模式默认 fontgallery.log）")
	fs.BoolVar(&args.noInput, "no-input", false, "不进入交互模式")
	fs.BoolVar(&args.verbose, "v", false, "启用调试日志（开发模式）")
	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("多余的参数: %s", strings.Join(fs.Args(), " "))
	}
	if args.reportPath != "" && !strings.HasSuffix(strings.ToLower(args.reportPath), ".xlsx") {
		args.reportPath += ".xlsx"
	}
	return args, nil
}

// 由参数生成配置
func (args *CLIArgs) config() (fontgallery.Config, error) {
	cfg := fontgallery.DefaultConfig()
	cfg.ViewportWidth = args.width
	cfg.ViewportHeight = args.height
	cfg.PointSize = args.size
	cfg.DPI = args.dpi
	cfg.SampleText = args.text
	cfg.Workers = args.workers

	fg, err := fontgallery.HexToRGBA(args.color)
	if err != nil {
		return cfg, fmt.Errorf("文本颜色无效: %w", err)
	}
	bg, err := fontgallery.HexToRGBA(args.background)
	if err != nil {
		return cfg, fmt.Errorf("背景颜色无效: %w", err)
	}
	cfg.Color, cfg.Background = fg, bg

	return cfg, cfg.Validate()
}

// 初始化日志
func setupLogger(args *CLIArgs, interactive bool) (*zap.Logger, func(), error) {
	var level zapcore.Level = zap.InfoLevel
	isDev := false

	if args.verbose {
		isDev = true
		level = zap.DebugLevel
	}

	output := args.logPath
	if output == "" && interactive && args.viewPath == "" {
		// 终端被图像输出占用
		output = "fontgallery.log"
	}
	return fontgallery.SetupLogger("font_gallery", level, isDev, output)
}

// 加载字体来源：内置字体，或系统字体 + 额外目录
func loadFonts(args *CLIArgs, logger *zap.Logger) (fontgallery.FontSource, error) {
	if args.builtin {
		return fontgallery.GoFonts(), nil
	}

	var sets []*fontgallery.FontSet
	if args.fontDir != "" {
		dir, err := fontgallery.DirFonts(args.fontDir, logger)
		if err != nil {
			return nil, err
		}
		sets = append(sets, dir)
	}

	system, err := fontgallery.SystemFonts(logger)
	if err != nil {
		if len(sets) == 0 {
			return nil, err
		}
		logger.Warn("系统字体不可用，只使用字体目录", zap.Error(err))
	} else {
		sets = append(sets, system)
	}
	return fontgallery.Merge(sets...), nil
}
