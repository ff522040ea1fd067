package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rxxx/fontgallery"
	"golang.org/x/term"
)

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyQuit
)

// escTimeout ESC 之后等待后续字节的时间，超时视为单独按下 ESC
const escTimeout = 50 * time.Millisecond

// decodeKey 从输入缓冲的开头解码一个按键，返回按键与消耗的字节数。
// 方向键序列可能被拆到多次读取中，序列不完整时 partial 为 true
func decodeKey(b []byte) (k key, n int, partial bool) {
	if b[0] != 0x1b {
		switch b[0] {
		case 'k':
			return keyUp, 1, false
		case 'j':
			return keyDown, 1, false
		case 'q', 'Q', 0x03:
			return keyQuit, 1, false
		}
		return keyNone, 1, false
	}

	if len(b) == 1 {
		return keyNone, 0, true
	}
	switch b[1] {
	case 'O':
		if len(b) == 2 {
			return keyNone, 0, true
		}
		return arrowKey(b[2]), 3, false
	case '[':
		// CSI：参数字节之后以 0x40-0x7e 结束
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				if i == 2 {
					return arrowKey(b[i]), 3, false
				}
				return keyNone, i + 1, false
			}
		}
		return keyNone, 0, true
	}
	// ESC 后跟普通字符（如 Alt 组合键）：ESC 按退出处理
	return keyQuit, 1, false
}

func arrowKey(final byte) key {
	switch final {
	case 'A':
		return keyUp
	case 'B':
		return keyDown
	}
	return keyNone
}

// scroller 交互循环操作的对象
type scroller interface {
	fontgallery.View
	ScrollUp()
	ScrollDown()
}

// 在 raw 模式下运行交互循环，退出时恢复终端
func runInteractive(in *os.File, s scroller, p presenter) error {
	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("无法进入 raw 模式: %w", err)
	}
	defer term.Restore(fd, oldState)

	return eventLoop(in, s, p)
}

type readResult struct {
	data []byte
	err  error
}

// readChunks 在单独的 goroutine 中读取输入，done 关闭后停止转发
func readChunks(r io.Reader, done <-chan struct{}) <-chan readResult {
	ch := make(chan readResult)
	go func() {
		defer close(ch)
		for {
			buf := make([]byte, 16)
			n, err := r.Read(buf)
			if n == 0 && err == nil {
				continue
			}
			select {
			case ch <- readResult{data: buf[:n], err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// eventLoop 先显示一帧，之后每个方向键滚动一次并重绘，直到退出键或输入结束
func eventLoop(r io.Reader, s scroller, p presenter) error {
	if err := p.Present(s); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	chunks := readChunks(r, done)

	var pending []byte
	var timeout <-chan time.Time
	for {
		select {
		case res, ok := <-chunks:
			if !ok {
				return nil
			}
			pending = append(pending, res.data...)
			for len(pending) > 0 {
				k, n, partial := decodeKey(pending)
				if partial {
					break
				}
				pending = pending[n:]
				quit, err := handleKey(k, s, p)
				if quit || err != nil {
					return err
				}
			}
			if errors.Is(res.err, io.EOF) {
				// 剩下不完整的 ESC 序列视为单独的 ESC
				return nil
			}
			if res.err != nil {
				return fmt.Errorf("读取输入失败: %w", res.err)
			}
		case <-timeout:
			// ESC 之后没有后续字节
			return nil
		}

		timeout = nil
		if len(pending) > 0 {
			timeout = time.After(escTimeout)
		}
	}
}

// handleKey 执行一个按键，滚动后重绘
func handleKey(k key, s scroller, p presenter) (quit bool, err error) {
	switch k {
	case keyQuit:
		return true, nil
	case keyUp:
		s.ScrollUp()
	case keyDown:
		s.ScrollDown()
	default:
		return false, nil
	}
	return false, p.Present(s)
}
