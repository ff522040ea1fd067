package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rxxx/fontgallery"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			// 捕获未知 panic，打印并以非零退出
			fmt.Fprintf(os.Stderr, "程序异常退出: %v\n", r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	// 解析命令行参数
	args, err := parseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", err)
		os.Exit(2)
	}

	cfg, err := args.config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", err)
		os.Exit(2)
	}

	interactive := !args.noInput && term.IsTerminal(int(os.Stdin.Fd()))

	// 初始化日志
	logger, loggerSync, err := setupLogger(args, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer loggerSync()

	if err := run(args, cfg, interactive, logger); err != nil {
		logger.Error("运行失败", zap.Error(err))
		loggerSync()
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

func run(args *CLIArgs, cfg fontgallery.Config, interactive bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fonts, err := loadFonts(args, logger)
	if err != nil {
		return err
	}
	gallery, err := buildGallery(ctx, fonts, cfg, logger)
	if err != nil {
		return err
	}

	if args.outPath != "" {
		if err := fontgallery.SavePNG(args.outPath, gallery.Composite().Canvas()); err != nil {
			return err
		}
		logger.Info("画布已保存", zap.String("output", args.outPath))
	}

	if args.reportPath != "" {
		if err := fontgallery.WriteReport(args.reportPath, gallery.Entries()); err != nil {
			return err
		}
		logger.Info("审计报告已保存", zap.String("output", args.reportPath))
	}

	if !interactive {
		if args.viewPath != "" {
			return (&filePresenter{path: args.viewPath}).Present(gallery)
		}
		return nil
	}

	var p presenter = &kittyPresenter{w: os.Stdout}
	if args.viewPath != "" {
		p = &filePresenter{path: args.viewPath}
	}
	defer p.Close()

	return runInteractive(os.Stdin, gallery, p)
}

// buildGallery 按字体来源列出的顺序渲染全部字体
func buildGallery(ctx context.Context, source fontgallery.FontSource, cfg fontgallery.Config, logger *zap.Logger) (*fontgallery.Gallery, error) {
	names := source.FontNames()
	logger.Info("开始渲染字体", zap.Int("fonts", len(names)), zap.Int("workers", cfg.Workers))
	return fontgallery.NewGallery(ctx, source, names, cfg, logger)
}
