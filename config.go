package fontgallery

import (
	"fmt"
	"image/color"
	"runtime"
)

// DefaultSampleText 每个字体的示例文本：小写字母、四个拉丁扩展字符和数字
const DefaultSampleText = "abcdefghijklmnopqrstxyzßöäü0123456789"

const (
	DefaultViewportWidth  = 1000
	DefaultViewportHeight = 600
	DefaultPointSize      = 24.0
	DefaultDPI            = 72.0
)

var (
	DefaultColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultBackground = color.RGBA{A: 255}
)

// Config 启动时确定的全部配置，显式传给 Strip 与 Composite
type Config struct {
	ViewportWidth  int
	ViewportHeight int
	PointSize      float64
	DPI            float64
	Color          color.RGBA
	Background     color.RGBA
	SampleText     string
	// 并发构建 Strip 的 worker 数量
	Workers int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		PointSize:      DefaultPointSize,
		DPI:            DefaultDPI,
		Color:          DefaultColor,
		Background:     DefaultBackground,
		SampleText:     DefaultSampleText,
		Workers:        runtime.NumCPU(),
	}
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("视口尺寸无效: %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.PointSize <= 0 {
		return fmt.Errorf("字号无效: %v", c.PointSize)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("DPI 无效: %v", c.DPI)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker 数量无效: %d", c.Workers)
	}
	return nil
}

// ScrollStep 方向键一次滚动的像素数（视口高度的三分之一）
func (c Config) ScrollStep() int {
	return c.ViewportHeight / 3
}

// StripOptions 由配置生成 Strip 的渲染参数
func (c Config) StripOptions() StripOptions {
	return StripOptions{
		PointSize:  c.PointSize,
		DPI:        c.DPI,
		Color:      c.Color,
		Background: c.Background,
		SampleText: c.SampleText,
	}
}
