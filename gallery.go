package fontgallery

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
)

// Status 单个字体在图库中的状态
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
)

// Entry 单个字体的审计记录
type Entry struct {
	Font   string
	Status Status
	Offset int // 在画布中的纵向偏移，跳过的字体为 -1
	Width  int
	Height int
	Err    error
}

type stripResult struct {
	strip *Strip
	err   error
}

// BuildStrips 并发构建每个字体的 Strip，结果保持 names 的顺序。
// 单个字体失败只记录日志并跳过，不影响其余字体。ctx 取消时停止派发并返回 ctx.Err()
func BuildStrips(ctx context.Context, resolver FontResolver, names []string, cfg Config, logger *zap.Logger) ([]*Strip, []Entry, error) {
	results := make([]stripResult, len(names))
	opts := cfg.StripOptions()

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(names) {
		workers = len(names)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// 每个任务只写自己的下标
				s, err := NewStrip(resolver, names[i], opts)
				results[i] = stripResult{strip: s, err: err}
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range names {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, nil, ctxErr
	}

	strips := make([]*Strip, 0, len(names))
	entries := make([]Entry, 0, len(names))
	offset := 0
	for i, r := range results {
		if r.err != nil {
			if !IsSkippable(r.err) {
				return nil, nil, fmt.Errorf("构建字体 %s 失败: %w", names[i], r.err)
			}
			logger.Warn("跳过字体", zap.String("font", names[i]), zap.Error(r.err))
			entries = append(entries, Entry{Font: names[i], Status: StatusSkipped, Offset: -1, Err: r.err})
			continue
		}
		b := r.strip.Bounds()
		logger.Debug("字体渲染完成", zap.String("font", names[i]), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
		strips = append(strips, r.strip)
		entries = append(entries, Entry{Font: names[i], Status: StatusOK, Offset: offset, Width: b.Dx(), Height: b.Dy()})
		offset += b.Dy()
	}
	return strips, entries, nil
}

// Measure 计算容纳所有 Strip 所需的画布尺寸：最大宽度与高度之和
func Measure(strips []*Strip) (width, height int) {
	for _, s := range strips {
		b := s.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}
	return width, height
}

// Gallery 字体图库：已拼装的 Composite 加上每个字体的审计记录
type Gallery struct {
	cfg       Config
	composite *Composite
	entries   []Entry
	logger    *zap.Logger
}

// NewGallery 构建所有 Strip，测量尺寸并拼装画布
func NewGallery(ctx context.Context, resolver FontResolver, names []string, cfg Config, logger *zap.Logger) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strips, entries, err := BuildStrips(ctx, resolver, names, cfg, logger)
	if err != nil {
		return nil, err
	}

	width, height := Measure(strips)
	composite := NewComposite(cfg.ViewportWidth, cfg.ViewportHeight)
	composite.SetBackground(cfg.Background)
	composite.Assemble(width, height, strips)

	logger.Info("图库拼装完成",
		zap.Int("requested", len(names)),
		zap.Int("rendered", len(strips)),
		zap.Int("skipped", len(names)-len(strips)),
		zap.Int("width", width),
		zap.Int("height", height))

	return &Gallery{cfg: cfg, composite: composite, entries: entries, logger: logger}, nil
}

// Composite 已拼装的画布
func (g *Gallery) Composite() *Composite { return g.composite }

// Entries 每个请求字体的记录，顺序与请求一致
func (g *Gallery) Entries() []Entry { return g.entries }

// Skipped 被跳过的字体
func (g *Gallery) Skipped() []Entry {
	var out []Entry
	for _, e := range g.entries {
		if e.Status == StatusSkipped {
			out = append(out, e)
		}
	}
	return out
}

// ScrollUp 向上滚动三分之一视口
func (g *Gallery) ScrollUp() { g.scroll(-g.cfg.ScrollStep()) }

// ScrollDown 向下滚动三分之一视口
func (g *Gallery) ScrollDown() { g.scroll(g.cfg.ScrollStep()) }

func (g *Gallery) scroll(delta int) {
	g.composite.Scroll(delta)
	g.logger.Debug("滚动", zap.Int("delta", delta), zap.Int("top", g.composite.Top()))
}

// CurrentView 当前可见区域
func (g *Gallery) CurrentView() (image.Image, image.Rectangle) {
	return g.composite.CurrentView()
}
