package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV 将单张工作表写为 CSV（带 BOM，便于 Excel 识别 UTF-8）
func WriteCSV(w io.Writer, sheet Sheet) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(sheet.Columns); err != nil {
		return fmt.Errorf("生成 CSV 失败: %w", err)
	}
	for _, row := range sheet.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("生成 CSV 失败: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprint(x)
	}
}
