package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var cellBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type xlsxStyles struct {
	header int
	data   int
	amount int
	link   int
}

// WriteXLSX 将工作簿序列化为 xlsx 写入 w
func WriteXLSX(w io.Writer, wb *Workbook) error {
	f, err := render(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("写入 Excel 失败: %w", err)
	}
	return nil
}

// XLSXBytes 序列化为内存中的 xlsx（邮件附件用）
func XLSXBytes(wb *Workbook) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, wb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(wb *Workbook) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("创建工作表 %s 失败: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("创建工作表 %s 失败: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, styles); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func newStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error

	// 表头样式
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("创建表头样式失败: %w", err)
	}
	// 数据样式
	if s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("创建数据样式失败: %w", err)
	}
	// 金额：千分位两位小数
	if s.amount, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    cellBorder,
		NumFmt:    4,
	}); err != nil {
		return s, fmt.Errorf("创建金额样式失败: %w", err)
	}
	if s.link, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "1265BE", Underline: "single"},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder,
	}); err != nil {
		return s, fmt.Errorf("创建链接样式失败: %w", err)
	}
	return s, nil
}

func writeSheet(f *excelize.File, sheet Sheet, styles xlsxStyles) error {
	name := sheet.Name
	for c, header := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell, cell, styles.header); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(name, col, col, columnWidth(header)); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
			style := styles.data
			switch v := value.(type) {
			case float64:
				style = styles.amount
			case string:
				if isLink(v) {
					if err := f.SetCellHyperLink(name, cell, v, "External"); err != nil {
						return err
					}
					style = styles.link
				}
			}
			if err := f.SetCellStyle(name, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func columnWidth(header string) float64 {
	switch {
	case strings.HasSuffix(header, "URL"):
		return 45
	case header == "Metric":
		return 24
	case header == "Value":
		return 26
	default:
		return 16
	}
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
