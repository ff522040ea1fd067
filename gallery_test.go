package fontgallery

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 4
	return cfg
}

// testFonts 内置字体加一个损坏的字体
func testFonts() *FontSet {
	broken := NewFontSet()
	broken.AddData("broken", []byte("not a font"))
	return Merge(GoFonts(), broken)
}

// TestBuildStrips_SkipOnFailure 失败的字体被跳过，其余字体按顺序保留
func TestBuildStrips_SkipOnFailure(t *testing.T) {
	logger := zaptest.NewLogger(t)
	names := []string{"goregular", "zzz", "gomono", "broken", "gobold"}

	strips, entries, err := BuildStrips(context.Background(), testFonts(), names, testConfig(), logger)
	if err != nil {
		t.Fatalf("BuildStrips() 失败: %v", err)
	}

	var got []string
	for _, s := range strips {
		got = append(got, s.FontIdentifier)
	}
	if diff := cmp.Diff([]string{"goregular", "gomono", "gobold"}, got); diff != "" {
		t.Errorf("strips mismatch (-want +got):\n%s", diff)
	}

	if len(entries) != len(names) {
		t.Fatalf("entries = %d, want %d", len(entries), len(names))
	}
	var statuses []Status
	for i, e := range entries {
		if e.Font != names[i] {
			t.Errorf("entries[%d].Font = %q, want %q", i, e.Font, names[i])
		}
		statuses = append(statuses, e.Status)
	}
	wantStatuses := []Status{StatusOK, StatusSkipped, StatusOK, StatusSkipped, StatusOK}
	if diff := cmp.Diff(wantStatuses, statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}

	if !errors.Is(entries[1].Err, ErrFontNotFound) {
		t.Errorf("zzz 的错误 = %v, want ErrFontNotFound", entries[1].Err)
	}
	var loadErr *FontLoadError
	if !errors.As(entries[3].Err, &loadErr) {
		t.Errorf("broken 的错误 = %v, want *FontLoadError", entries[3].Err)
	}

	// 偏移为前面已渲染字体的高度之和
	if entries[0].Offset != 0 || entries[2].Offset != strips[0].Bounds().Dy() ||
		entries[4].Offset != strips[0].Bounds().Dy()+strips[1].Bounds().Dy() {
		t.Errorf("偏移错误: %+v", entries)
	}
	if entries[1].Offset != -1 || entries[3].Offset != -1 {
		t.Errorf("跳过的字体偏移应为 -1")
	}
}

// TestBuildStrips_Workers 不同并发度得到相同的顺序
func TestBuildStrips_Workers(t *testing.T) {
	fonts := GoFonts()
	names := fonts.FontNames()

	for _, workers := range []int{0, 1, 3, 64} {
		cfg := testConfig()
		cfg.Workers = workers
		strips, _, err := BuildStrips(context.Background(), fonts, names, cfg, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("workers=%d: BuildStrips() 失败: %v", workers, err)
		}
		if len(strips) != len(names) {
			t.Fatalf("workers=%d: strips = %d, want %d", workers, len(strips), len(names))
		}
		for i, s := range strips {
			if s.FontIdentifier != names[i] {
				t.Errorf("workers=%d: strips[%d] = %q, want %q", workers, i, s.FontIdentifier, names[i])
			}
		}
	}
}

// TestBuildStrips_Canceled 取消的 context 返回错误
func TestBuildStrips_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Workers = 1
	_, _, err := BuildStrips(ctx, GoFonts(), GoFonts().FontNames(), cfg, zaptest.NewLogger(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// TestNewGallery 测试完整的图库构建与滚动
func TestNewGallery(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := testConfig()
	cfg.ViewportHeight = 90

	fonts := testFonts()
	names := fonts.FontNames()
	g, err := NewGallery(context.Background(), fonts, names, cfg, logger)
	if err != nil {
		t.Fatalf("NewGallery() 失败: %v", err)
	}

	skipped := g.Skipped()
	if len(skipped) != 1 || skipped[0].Font != "broken" {
		t.Fatalf("Skipped() = %+v, want [broken]", skipped)
	}

	// 画布大小为最大宽度与高度之和
	maxWidth, totalHeight := 0, 0
	for _, e := range g.Entries() {
		if e.Status != StatusOK {
			continue
		}
		maxWidth = max(maxWidth, e.Width)
		totalHeight += e.Height
	}
	canvas := g.Composite().Canvas()
	if want := image.Rect(0, 0, maxWidth, totalHeight); canvas.Bounds() != want {
		t.Fatalf("画布 = %v, want %v", canvas.Bounds(), want)
	}

	// 每个字体所在区域与其 Strip 一致
	for _, e := range g.Entries() {
		if e.Status != StatusOK {
			continue
		}
		s, err := NewStrip(fonts, e.Font, cfg.StripOptions())
		if err != nil {
			t.Fatalf("NewStrip(%s) 失败: %v", e.Font, err)
		}
		for y := 0; y < e.Height; y++ {
			for x := 0; x < e.Width; x++ {
				if canvas.RGBAAt(x, e.Offset+y) != s.Bitmap().RGBAAt(x, y) {
					t.Fatalf("%s: (%d,%d) 像素不一致", e.Font, x, y)
				}
			}
		}
	}

	step := cfg.ScrollStep()
	g.ScrollDown()
	if got := g.Composite().Top(); got != step {
		t.Errorf("ScrollDown() 后 top = %d, want %d", got, step)
	}
	g.ScrollUp()
	g.ScrollUp()
	if got := g.Composite().Top(); got != 0 {
		t.Errorf("ScrollUp() 后 top = %d, want 0", got)
	}
	for i := 0; i < 1000; i++ {
		g.ScrollDown()
	}
	if got, want := g.Composite().Top(), totalHeight-cfg.ViewportHeight; got != want {
		t.Errorf("滚到底后 top = %d, want %d", got, want)
	}

	_, bounds := g.CurrentView()
	if bounds != image.Rect(0, 0, cfg.ViewportWidth, cfg.ViewportHeight) {
		t.Errorf("CurrentView() bounds = %v", bounds)
	}
}

// TestNewGallery_AllSkipped 所有字体都失败时得到空白画布
func TestNewGallery_AllSkipped(t *testing.T) {
	g, err := NewGallery(context.Background(), GoFonts(), []string{"x", "y"}, testConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewGallery() 失败: %v", err)
	}
	if !g.Composite().Canvas().Bounds().Empty() {
		t.Errorf("画布 = %v, want 空", g.Composite().Canvas().Bounds())
	}
	g.ScrollDown()
	if g.Composite().Top() != 0 {
		t.Errorf("top = %d, want 0", g.Composite().Top())
	}
	if len(g.Skipped()) != 2 {
		t.Errorf("Skipped() = %d, want 2", len(g.Skipped()))
	}
}

// TestNewGallery_InvalidConfig 配置无效时返回错误
func TestNewGallery_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ViewportHeight = 0
	if _, err := NewGallery(context.Background(), GoFonts(), nil, cfg, zaptest.NewLogger(t)); err == nil {
		t.Error("NewGallery() 应返回错误")
	}
}
