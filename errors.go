package fontgallery

import (
	"errors"
	"fmt"
)

var (
	// ErrFontNotFound 字体标识无法解析到任何字体文件
	ErrFontNotFound = errors.New("字体未找到")
	// ErrNotAssembled 画布尚未拼装就调用了 Scroll/CurrentView
	ErrNotAssembled = errors.New("画布尚未拼装")
)

// FontLoadError 字体解析或加载失败（标识无法解析、文件不可读或已损坏）
type FontLoadError struct {
	Font string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("加载字体 %s 失败: %v", e.Font, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// RasterizationError 字体已加载，但在渲染阶段失败
type RasterizationError struct {
	Font string
	Err  error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("渲染字体 %s 失败: %v", e.Font, e.Err)
}

func (e *RasterizationError) Unwrap() error { return e.Err }

// IsSkippable 判断错误是否只影响单个字体（调用方记录日志后跳过该字体即可）
func IsSkippable(err error) bool {
	var loadErr *FontLoadError
	var rasterErr *RasterizationError
	return errors.As(err, &loadErr) || errors.As(err, &rasterErr)
}
