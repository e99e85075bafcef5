package extract

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
	"github.com/xuri/excelize/v2"
)

// xlsxText renders every sheet as tab-separated rows.
func xlsxText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", err
		}
		writeRows(&buf, rows)
	}
	return buf.String(), nil
}

// xlsText handles legacy BIFF workbooks.
func xlsText(data []byte) (string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		var rows [][]string
		for _, row := range sheet.GetRows() {
			rows = append(rows, cellValues(row.GetCols()))
		}
		writeRows(&buf, rows)
	}
	return buf.String(), nil
}

func cellValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		val := col.GetString()
		if val == "" {
			if num := col.GetFloat64(); num != 0 {
				val = strconv.FormatFloat(num, 'f', -1, 64)
			} else if n := col.GetInt64(); n != 0 {
				val = strconv.FormatInt(n, 10)
			}
		}
		out = append(out, val)
	}
	return out
}

func writeRows(buf *strings.Builder, rows [][]string) {
	for _, row := range rows {
		line := strings.TrimRight(strings.Join(row, "\t"), "\t")
		if line == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}
