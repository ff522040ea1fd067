package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/rxxx/fontgallery"
	"golang.org/x/image/draw"
)

// presenter 把当前视口显示出来
type presenter interface {
	Present(v fontgallery.View) error
	Close() error
}

// frame 清屏为黑色后把当前视图贴到它的矩形位置
func frame(v fontgallery.View) *image.RGBA {
	img, bounds := v.CurrentView()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, img, img.Bounds().Min, draw.Src)
	return dst
}

// kitty 图形协议单个转义序列的最大负载
const kittyChunk = 4096

// kittyPresenter 通过 kitty 图形协议把帧输出到终端
type kittyPresenter struct {
	w io.Writer
}

func (p *kittyPresenter) Present(v fontgallery.View) error {
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, frame(v)); err != nil {
		return fmt.Errorf("编码帧失败: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(encoded.Bytes())

	var out bytes.Buffer
	out.WriteString("\x1b_Ga=d,d=A,q=2\x1b\\") // 删除上一帧
	out.WriteString("\x1b[H")
	for i := 0; i < len(payload); i += kittyChunk {
		end := min(i+kittyChunk, len(payload))
		more := 0
		if end < len(payload) {
			more = 1
		}
		if i == 0 {
			fmt.Fprintf(&out, "\x1b_Gf=100,a=T,q=2,m=%d;", more)
		} else {
			fmt.Fprintf(&out, "\x1b_Gm=%d;", more)
		}
		out.WriteString(payload[i:end])
		out.WriteString("\x1b\\")
	}

	_, err := p.w.Write(out.Bytes())
	return err
}

func (p *kittyPresenter) Close() error {
	_, err := io.WriteString(p.w, "\x1b_Ga=d,d=A,q=2\x1b\\\r\n")
	return err
}

// filePresenter 每帧重写一个 PNG 文件，配合会自动刷新的图片查看器使用
type filePresenter struct {
	path string
}

func (p *filePresenter) Present(v fontgallery.View) error {
	tmp := p.path + ".tmp"
	if err := fontgallery.SavePNG(tmp, frame(v)); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p *filePresenter) Close() error { return nil }
