package fontgallery

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// View 呈现层需要的最小能力：当前位图及其在屏幕上的矩形
type View interface {
	CurrentView() (image.Image, image.Rectangle)
}

var (
	_ View = (*Strip)(nil)
	_ View = (*Composite)(nil)
)

// Composite 把多个 Strip 纵向拼成一张大画布，并在其上维护一个固定大小、
// 只能上下移动的视口。
//
// 状态只有两个：NewComposite 之后为未拼装，Assemble 之后为已拼装，不可回退。
// 未拼装时调用 Scroll/CurrentView 会 panic(ErrNotAssembled)。
type Composite struct {
	canvas     *image.RGBA
	background color.Color

	viewport      image.Rectangle
	visible       image.Image
	visibleBounds image.Rectangle
}

// NewComposite 创建视口位于顶部、尚未拼装的 Composite
func NewComposite(viewportWidth, viewportHeight int) *Composite {
	return &Composite{
		background: DefaultBackground,
		viewport:   image.Rect(0, 0, viewportWidth, viewportHeight),
	}
}

// SetBackground 设置画布底色，需在 Assemble 之前调用
func (c *Composite) SetBackground(bg color.Color) {
	c.background = bg
}

// Assemble 分配 width×height 的画布并按顺序把每个 Strip 贴到 x=0、
// y=前面各 Strip 高度之和 的位置。
// width/height 由调用方保证足够大，超出部分会被裁掉。
// 拼装后不再持有 strips 的引用，视口回到顶部
func (c *Composite) Assemble(width, height int, strips []*Strip) {
	if c.canvas != nil {
		panic("fontgallery: Composite 只能拼装一次")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)

	y := 0
	for _, s := range strips {
		b := s.Bounds()
		dst := image.Rect(0, y, b.Dx(), y+b.Dy())
		// draw.Src 逐像素复制，不做混合
		draw.Draw(canvas, dst, s.Bitmap(), b.Min, draw.Src)
		y += b.Dy()
	}

	c.canvas = canvas
	c.viewport = image.Rect(0, 0, c.viewport.Dx(), c.viewport.Dy())
	c.update()
}

// Scroll 视口向下移动 delta 像素（负数向上）。
//
// 外层判断移动后的 top 是否不小于 0，内层判断 bottom+delta 是否不超过画布高度；
// 越界时分别贴到顶部或底部。画布比视口矮时视口固定在 top=0。
// 比较时把 delta 移到一侧，任意大小的 delta 都不会溢出
func (c *Composite) Scroll(delta int) {
	c.mustBeAssembled()

	height := c.canvas.Bounds().Dy()
	if delta >= -c.viewport.Min.Y {
		if delta <= height-c.viewport.Max.Y {
			c.viewport = c.viewport.Add(image.Pt(0, delta))
		} else {
			c.setTop(height - c.viewport.Dy())
		}
	} else {
		c.setTop(0)
	}

	if c.viewport.Min.Y < 0 {
		c.setTop(0)
	}
	c.update()
}

// CurrentView 返回画布上视口覆盖的区域，以及屏幕坐标下的矩形（原点 (0,0)，视口大小）
func (c *Composite) CurrentView() (image.Image, image.Rectangle) {
	c.mustBeAssembled()
	return c.visible, c.visibleBounds
}

// Viewport 视口在画布坐标中的位置
func (c *Composite) Viewport() image.Rectangle { return c.viewport }

// Top 视口上边缘
func (c *Composite) Top() int { return c.viewport.Min.Y }

// Canvas 拼装后的整张画布，未拼装时为 nil
func (c *Composite) Canvas() *image.RGBA { return c.canvas }

// Assembled 是否已拼装
func (c *Composite) Assembled() bool { return c.canvas != nil }

func (c *Composite) setTop(top int) {
	c.viewport = image.Rect(c.viewport.Min.X, top, c.viewport.Max.X, top+c.viewport.Dy())
}

func (c *Composite) update() {
	c.visible = c.canvas.SubImage(c.viewport)
	c.visibleBounds = image.Rect(0, 0, c.viewport.Dx(), c.viewport.Dy())
}

func (c *Composite) mustBeAssembled() {
	if c.canvas == nil {
		panic(ErrNotAssembled)
	}
}
