package fontgallery

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReportSheet 审计报告的工作表名称
const ReportSheet = "Fonts"

var reportHeaders = []string{"字体", "状态", "纵向偏移", "宽度", "高度", "错误"}

// WriteReport 把每个字体的审计记录导出为 .xlsx
func WriteReport(path string, entries []Entry) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭报告文件失败: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return fmt.Errorf("设置工作表名称失败: %w", err)
	}

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ReportSheet, cell, h); err != nil {
			return fmt.Errorf("写入表头失败: %w", err)
		}
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFBDD7EE"}},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}
	lastHead, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	if err := f.SetCellStyle(ReportSheet, "A1", lastHead, headStyle); err != nil {
		return fmt.Errorf("设置表头样式失败: %w", err)
	}

	skipStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "FFC00000"},
	})
	if err != nil {
		return fmt.Errorf("创建样式失败: %w", err)
	}

	for i, e := range entries {
		row := i + 2
		values := []any{e.Font, string(e.Status), e.Offset, e.Width, e.Height}
		if e.Err != nil {
			values = append(values, e.Err.Error())
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ReportSheet, cell, &values); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", row, err)
		}
		if e.Status == StatusSkipped {
			last, _ := excelize.CoordinatesToCellName(len(reportHeaders), row)
			if err := f.SetCellStyle(ReportSheet, cell, last, skipStyle); err != nil {
				return fmt.Errorf("设置第 %d 行样式失败: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(ReportSheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(ReportSheet, "F", "F", 60); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存报告失败: %w", err)
	}
	return nil
}
