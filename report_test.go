package fontgallery

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

// TestWriteReport 导出后读回内容
func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	entries := []Entry{
		{Font: "goregular", Status: StatusOK, Offset: 0, Width: 500, Height: 28},
		{Font: "zzz", Status: StatusSkipped, Offset: -1, Err: errors.New("字体未找到: zzz")},
		{Font: "gomono", Status: StatusOK, Offset: 28, Width: 620, Height: 29},
	}

	if err := WriteReport(path, entries); err != nil {
		t.Fatalf("WriteReport() 失败: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("打开报告失败: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{ReportSheet}, f.GetSheetList()); diff != "" {
		t.Errorf("工作表 mismatch (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatalf("读取报告失败: %v", err)
	}
	want := [][]string{
		{"字体", "状态", "纵向偏移", "宽度", "高度", "错误"},
		{"goregular", "ok", "0", "500", "28"},
		{"zzz", "skipped", "-1", "0", "0", "字体未找到: zzz"},
		{"gomono", "ok", "28", "620", "29"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("报告内容 mismatch (-want +got):\n%s", diff)
	}
}

// TestWriteReport_Empty 没有字体时只有表头
func TestWriteReport_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteReport(path, nil); err != nil {
		t.Fatalf("WriteReport() 失败: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("打开报告失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatalf("读取报告失败: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("行数 = %d, want 1", len(rows))
	}
}

// TestWriteReport_BadPath 目录不存在时返回错误
func TestWriteReport_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.xlsx")
	if err := WriteReport(path, nil); err == nil {
		t.Error("WriteReport() 应返回错误")
	}
}
