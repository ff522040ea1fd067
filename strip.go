package fontgallery

import (
	"image"
	"image/color"
)

// StripOptions Strip 的渲染参数，零值字段使用默认值。
// Color 和 Background 的零值 color.RGBA{} 表示"使用默认颜色"，
// 因此无法选择完全透明的黑色；需要透明时用 A 为 0 的其他分量，如 color.RGBA{R: 1}
type StripOptions struct {
	PointSize  float64
	DPI        float64
	Color      color.RGBA // 零值为 DefaultColor
	Background color.RGBA // 零值为 DefaultBackground
	SampleText string
}

func (o StripOptions) withDefaults() StripOptions {
	if o.PointSize <= 0 {
		o.PointSize = DefaultPointSize
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Color == (color.RGBA{}) {
		o.Color = DefaultColor
	}
	if o.Background == (color.RGBA{}) {
		o.Background = DefaultBackground
	}
	if o.SampleText == "" {
		o.SampleText = DefaultSampleText
	}
	return o
}

// Strip 一个字体的示例行："<字体名>: <示例文本>"。构造后只读
type Strip struct {
	FontIdentifier string
	PointSize      float64
	Color          color.RGBA
	SampleText     string

	bitmap *image.RGBA
	bounds image.Rectangle
}

// NewStrip 解析字体并渲染示例行。
// 解析失败返回 *FontLoadError，渲染失败返回 *RasterizationError，均不重试
func NewStrip(resolver FontResolver, fontIdentifier string, opts StripOptions) (*Strip, error) {
	opts = opts.withDefaults()

	face, err := resolver.Resolve(fontIdentifier, opts.PointSize, opts.DPI)
	if err != nil {
		return nil, &FontLoadError{Font: fontIdentifier, Err: err}
	}
	defer face.Close()

	s := &Strip{
		FontIdentifier: fontIdentifier,
		PointSize:      opts.PointSize,
		Color:          opts.Color,
		SampleText:     opts.SampleText,
	}
	bitmap, err := renderLabel(face, s.Label(), opts.Color, opts.Background)
	if err != nil {
		return nil, &RasterizationError{Font: fontIdentifier, Err: err}
	}
	// bitmap 与 bounds 必须同时更新
	s.bitmap, s.bounds = bitmap, bitmap.Bounds()
	return s, nil
}

// Label 渲染的完整文本
func (s *Strip) Label() string {
	return s.FontIdentifier + ": " + s.SampleText
}

// Bitmap 渲染结果
func (s *Strip) Bitmap() *image.RGBA { return s.bitmap }

// Bounds 位图矩形，原点为 (0,0)
func (s *Strip) Bounds() image.Rectangle { return s.bounds }

// CurrentView 返回位图及其矩形
func (s *Strip) CurrentView() (image.Image, image.Rectangle) {
	return s.bitmap, s.bounds
}
