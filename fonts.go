package fontgallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/cases"
)

// FontResolver 把字体标识解析为指定字号的字体面
type FontResolver interface {
	Resolve(identifier string, size, dpi float64) (font.Face, error)
}

// FontLister 列出可用字体标识
type FontLister interface {
	FontNames() []string
}

// FontSource 既能列出字体又能解析字体，图库的字体来源
type FontSource interface {
	FontResolver
	FontLister
}

var _ FontSource = (*FontSet)(nil)

// fontRef 字体的位置：文件路径 + 集合内索引，或内置字体数据
type fontRef struct {
	path  string
	index int
	data  []byte
}

// FontSet 一组按名称索引的字体，解析结果带缓存，可并发使用
type FontSet struct {
	names []string
	refs  map[string]fontRef

	mu    sync.RWMutex
	cache map[string]*opentype.Font
}

// NewFontSet 创建空的字体集合
func NewFontSet() *FontSet {
	return &FontSet{
		refs:  make(map[string]fontRef),
		cache: make(map[string]*opentype.Font),
	}
}

// NormalizeName 规范化字体名称：大小写折叠并去掉空格、连字符和下划线
func NormalizeName(name string) string {
	// Caser 有状态，不能在 goroutine 间共享
	name = cases.Fold().String(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, name)
}

// AddData 添加内存中的字体数据。同名字体只保留第一个
func (s *FontSet) AddData(name string, data []byte) {
	s.add(name, fontRef{data: data})
}

// AddFile 添加字体文件，index 为字体集合（.ttc/.otc）中的序号
func (s *FontSet) AddFile(name, path string, index int) {
	s.add(name, fontRef{path: path, index: index})
}

func (s *FontSet) add(name string, ref fontRef) {
	key := NormalizeName(name)
	if key == "" {
		return
	}
	if _, ok := s.refs[key]; ok {
		return
	}
	s.refs[key] = ref
	s.names = append(s.names, key)
}

// FontNames 返回字体名称，保持添加顺序
func (s *FontSet) FontNames() []string {
	return append([]string(nil), s.names...)
}

// Has 判断集合中是否存在该字体
func (s *FontSet) Has(name string) bool {
	_, ok := s.refs[NormalizeName(name)]
	return ok
}

// Len 字体数量
func (s *FontSet) Len() int { return len(s.names) }

// Resolve 解析字体并创建字体面
func (s *FontSet) Resolve(identifier string, size, dpi float64) (font.Face, error) {
	f, err := s.load(identifier)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体面失败: %w", err)
	}
	return face, nil
}

func (s *FontSet) load(identifier string) (*opentype.Font, error) {
	key := NormalizeName(identifier)
	ref, ok := s.refs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, identifier)
	}

	s.mu.RLock()
	f, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	data := ref.data
	if data == nil {
		var err error
		data, err = os.ReadFile(ref.path)
		if err != nil {
			return nil, fmt.Errorf("读取字体文件失败: %w", err)
		}
	}
	f, err := ParseFont(data, ref.index)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = f
	s.mu.Unlock()
	return f, nil
}

// ParseFont 解析字体数据，单字体解析失败时按字体集合处理
func ParseFont(data []byte, index int) (*opentype.Font, error) {
	if index == 0 {
		if f, err := opentype.Parse(data); err == nil {
			return f, nil
		}
	}

	collection, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	if index < 0 || index >= collection.NumFonts() {
		return nil, fmt.Errorf("字体集合索引 %d 越界（共 %d 个）", index, collection.NumFonts())
	}
	f, err := collection.Font(index)
	if err != nil {
		return nil, fmt.Errorf("解析字体集合失败: %w", err)
	}
	return f, nil
}

// Merge 按顺序合并多个字体集合，同名字体以先出现的为准
func Merge(sets ...*FontSet) *FontSet {
	out := NewFontSet()
	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, name := range set.names {
			out.add(name, set.refs[name])
		}
	}
	return out
}

// GoFonts 内置的 Go 字体族，不依赖系统安装的字体
func GoFonts() *FontSet {
	s := NewFontSet()
	s.AddData("goregular", goregular.TTF)
	s.AddData("gobold", gobold.TTF)
	s.AddData("goitalic", goitalic.TTF)
	s.AddData("gobolditalic", gobolditalic.TTF)
	s.AddData("gomedium", gomedium.TTF)
	s.AddData("gomediumitalic", gomediumitalic.TTF)
	s.AddData("gomono", gomono.TTF)
	s.AddData("gomonobold", gomonobold.TTF)
	s.AddData("gomonoitalic", gomonoitalic.TTF)
	s.AddData("gomonobolditalic", gomonobolditalic.TTF)
	s.AddData("gosmallcaps", gosmallcaps.TTF)
	s.AddData("gosmallcapsitalic", gosmallcapsitalic.TTF)
	return s
}

// isFontFile 判断扩展名是否为支持的字体文件
func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".ttc", ".otf", ".otc":
		return true
	}
	return false
}

// DirFonts 扫描目录下的字体文件，名称取文件名（不含扩展名）
func DirFonts(dir string, logger *zap.Logger) (*FontSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("无法读取字体目录 %s: %w", dir, err)
	}

	s := NewFontSet()
	for _, entry := range entries {
		if entry.IsDir() || !isFontFile(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		s.AddFile(name, filepath.Join(dir, entry.Name()), 0)
		logger.Debug("发现字体文件", zap.String("file", entry.Name()))
	}
	logger.Info("字体目录扫描完成", zap.String("dir", dir), zap.Int("fonts", s.Len()))
	return s, nil
}

// SystemFonts 枚举系统已安装的字体。同一字体族有多个文件时，
// 取文件名最短的一个（通常是常规字重）
func SystemFonts(logger *zap.Logger) (*FontSet, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	footprints, err := fontscan.SystemFonts(zap.NewStdLog(logger.Named("fontscan")), cacheDir)
	if err != nil {
		return nil, fmt.Errorf("枚举系统字体失败: %w", err)
	}

	sort.SliceStable(footprints, func(i, j int) bool {
		a, b := footprints[i], footprints[j]
		fa, fb := NormalizeName(a.Family), NormalizeName(b.Family)
		if fa != fb {
			return fa < fb
		}
		la, lb := len(filepath.Base(a.Location.File)), len(filepath.Base(b.Location.File))
		if la != lb {
			return la < lb
		}
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		return a.Location.Index < b.Location.Index
	})

	s := NewFontSet()
	for _, fp := range footprints {
		s.AddFile(fp.Family, fp.Location.File, int(fp.Location.Index))
	}
	logger.Info("系统字体枚举完成", zap.Int("files", len(footprints)), zap.Int("families", s.Len()))
	return s, nil
}
