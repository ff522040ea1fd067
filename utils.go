package fontgallery

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// HexToRGBA 将十六进制颜色转换为 color.RGBA
func HexToRGBA(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		// #fff 简写
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
		A: 255, // 默认不透明
	}, nil
}

// ceilPixels 将 26.6 定点数向上取整为像素
func ceilPixels(v fixed.Int26_6) int {
	return v.Ceil()
}
