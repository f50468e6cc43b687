package question

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet layout: one header row, one question per row. List cells are separated
// by "|"; cross table answers separate rows with ";" and cells with "|" (1/0 or true/false).
// An empty multi choice answer key is written as "-" since a blank cell means no answer.
const (
	xlsxSheetName     = "Questions"
	xlsxListSeparator = "|"
	xlsxRowSeparator  = ";"
	xlsxEmptyList     = "-"
)

var xlsxHeaders = []string{"id", "type", "question", "options", "answer", "row_header", "row_names", "col_group", "col_names"}

func parseXLSXDocument(data []byte) (Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("parse xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Document{}, fmt.Errorf("parse xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Document{}, fmt.Errorf("parse xlsx: read rows: %w", err)
	}
	if len(rows) == 0 {
		return Document{}, fmt.Errorf("parse xlsx: missing header row")
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"type", "question"} {
		if _, ok := headerMap[required]; !ok {
			return Document{}, fmt.Errorf("parse xlsx: missing %q column", required)
		}
	}
	for header := range headerMap {
		if header != "" && !isXLSXHeader(header) {
			return Document{}, fmt.Errorf("parse xlsx: unknown column %q", header)
		}
	}

	doc := Document{Version: 1}
	for _, row := range rows[1:] {
		cell := func(name string) string {
			index, ok := headerMap[name]
			if !ok || index >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[index])
		}
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		record := Record{
			ID:        cell("id"),
			Type:      cell("type"),
			Question:  cell("question"),
			Options:   splitList(cell("options"), xlsxListSeparator),
			RowHeader: cell("row_header"),
			RowNames:  splitList(cell("row_names"), xlsxListSeparator),
		}
		if items := splitList(cell("col_names"), xlsxListSeparator); len(items) > 0 || cell("col_group") != "" {
			record.ColNames = []ColumnGroup{{Group: cell("col_group"), Items: items}}
		}
		record.Answer = parseXLSXAnswer(Kind(strings.ToLower(record.Type)), cell("answer"))
		doc.Questions = append(doc.Questions, record)
	}
	return doc, nil
}

func isXLSXHeader(name string) bool {
	for _, header := range xlsxHeaders {
		if header == name {
			return true
		}
	}
	return false
}

// parseXLSXAnswer converts an answer cell into the raw shape the JSON/YAML decoders produce.
// Cells that do not parse are passed through as strings so validation can name the field.
func parseXLSXAnswer(kind Kind, text string) AnswerValue {
	if text == "" {
		return AnswerValue{}
	}
	switch kind {
	case KindSingleChoice:
		if n, err := strconv.Atoi(text); err == nil {
			return NewAnswerValue(n)
		}
	case KindMultiChoice:
		if strings.TrimSpace(text) == xlsxEmptyList {
			return NewAnswerValue([]any{})
		}
		parts := splitList(text, xlsxListSeparator)
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.Atoi(part)
			if err != nil {
				return NewAnswerValue(text)
			}
			values = append(values, n)
		}
		return NewAnswerValue(values)
	case KindCrossTable:
		rows := splitList(text, xlsxRowSeparator)
		matrix := make([]any, 0, len(rows))
		for _, row := range rows {
			cells := splitList(row, xlsxListSeparator)
			values := make([]any, 0, len(cells))
			for _, c := range cells {
				b, err := strconv.ParseBool(c)
				if err != nil {
					return NewAnswerValue(text)
				}
				values = append(values, b)
			}
			matrix = append(matrix, values)
		}
		return NewAnswerValue(matrix)
	}
	return NewAnswerValue(text)
}

func splitList(text, separator string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, separator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// EncodeXLSX writes records into a single-sheet workbook readable by Load.
func EncodeXLSX(records []Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheetName); err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	header := make([]any, len(xlsxHeaders))
	for i, name := range xlsxHeaders {
		header[i] = name
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("encode xlsx: write header: %w", err)
	}
	for i, record := range records {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("encode xlsx: %w", err)
		}
		var group ColumnGroup
		if len(record.ColNames) > 0 {
			group = record.ColNames[0]
		}
		row := []any{
			record.ID,
			record.Type,
			record.Question,
			strings.Join(record.Options, xlsxListSeparator),
			formatXLSXAnswer(record.Answer),
			record.RowHeader,
			strings.Join(record.RowNames, xlsxListSeparator),
			group.Group,
			strings.Join(group.Items, xlsxListSeparator),
		}
		if err := f.SetSheetRow(xlsxSheetName, cellName, &row); err != nil {
			return nil, fmt.Errorf("encode xlsx: write row %d: %w", i+2, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func formatXLSXAnswer(value AnswerValue) string {
	if !value.IsSet() {
		return ""
	}
	if n, ok := value.index(); ok {
		return strconv.Itoa(n)
	}
	if matrix, ok := value.matrix(); ok && len(matrix) > 0 && isMatrixShaped(value.raw) {
		rows := make([]string, 0, len(matrix))
		for _, row := range matrix {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				cells = append(cells, strconv.FormatBool(c))
			}
			rows = append(rows, strings.Join(cells, xlsxListSeparator))
		}
		return strings.Join(rows, xlsxRowSeparator)
	}
	if indices, ok := value.indices(); ok {
		if len(indices) == 0 {
			return xlsxEmptyList
		}
		parts := make([]string, 0, len(indices))
		for _, n := range indices {
			parts = append(parts, strconv.Itoa(n))
		}
		return strings.Join(parts, xlsxListSeparator)
	}
	return fmt.Sprint(value.raw)
}

func isMatrixShaped(raw any) bool {
	rows, ok := raw.([]any)
	if !ok || len(rows) == 0 {
		return false
	}
	_, ok = rows[0].([]any)
	return ok
}
