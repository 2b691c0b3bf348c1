package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"github.com/xuri/excelize/v2"
)

type ParseResult struct {
	Records []model.Record
	// rows dropped because the impact could not be coerced or the row was malformed
	Dropped int
}

func parseRows(header []string, next func() ([]string, error)) (*ParseResult, error) {
	idx, err := newColumnIndex(header)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{Records: []model.Record{}}
	for {
		row, err := next()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			res.Dropped++
			continue
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}

		rec, ok := idx.parseRow(row)
		if !ok {
			res.Dropped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// ParseCSV reads a comma or semicolon separated file with a header row.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comma = sniffDelimiter(data)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: csv has no header", common.ErrorMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return parseRows(header, reader.Read)
}

// ParseXLSX reads the first sheet of a workbook, the first row is the header.
func ParseXLSX(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrorMissingColumn)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", common.ErrorMissingColumn, sheets[0])
	}

	i := 1
	return parseRows(rows[0], func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		i++
		return rows[i-1], nil
	})
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
