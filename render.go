package fontgallery

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// renderLabel 用给定字体面把文本渲染到不透明背景上。
// 位图宽度为文本步进宽度，高度为 ascent+descent，均向上取整
func renderLabel(face font.Face, text string, fg, bg color.RGBA) (img *image.RGBA, err error) {
	// 损坏的字形数据可能在光栅化时才暴露
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("光栅化异常: %v", r)
		}
	}()

	metrics := face.Metrics()
	width := ceilPixels(font.MeasureString(face, text))
	height := ceilPixels(metrics.Ascent + metrics.Descent)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("渲染尺寸无效: %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetFontFace(face)
	dc.SetColor(fg)
	dc.DrawString(text, 0, float64(ceilPixels(metrics.Ascent)))

	return toRGBA(dc.Image()), nil
}

// toRGBA 确保得到 origin 为 (0,0) 的 *image.RGBA
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// SavePNG 保存图片为 PNG
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return out.Close()
}
