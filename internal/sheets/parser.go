package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/discography-sync/internal/model"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("malformed CSV")

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse converts CSV text exported from a spreadsheet into normalized rows.
//
// The first record is the header; each following record becomes one row
// keyed by header name and normalized through model.NewRow, so the year is
// always a canonical string regardless of how the sheet formatted it.
//
// The following input is tolerated:
//   - A leading UTF-8 byte order mark
//   - Rows shorter or longer than the header (missing cells read as empty,
//     cells without a header are dropped)
//   - Blank lines and rows whose cells are all blank (skipped)
//   - Stray quotes, e.g. 12" Single, which are kept as literal text
//   - Repeated header names: the first column keeps the name, later ones
//     are renamed name_1, name_2 and land in Row.Extra
//
// An empty document or a header without data rows yields no rows and no
// error.
//
// Example:
//
//	rows, err := Parse("year,title\n2020,First Light\n\n")
//	// len(rows) == 1, rows[0].Year == "2020"
func Parse(text string) ([]model.Row, error) {
	content := bytes.TrimPrefix([]byte(text), utf8BOM)
	return ParseReader(bytes.NewReader(content))
}

// ParseReader is Parse over a stream. Every error it returns, including
// read failures of src, wraps ErrParse.
func ParseReader(src io.Reader) ([]model.Row, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrParse, err)
	}
	header = uniqueHeader(header)

	var rows []model.Row
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if isBlank(fields) {
			continue
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(fields) {
				record[name] = fields[i]
			} else {
				record[name] = ""
			}
		}
		rows = append(rows, model.NewRow(record))
	}

	return rows, nil
}

// uniqueHeader trims header names and renames repeats so every non-empty
// name maps to exactly one column.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		unique := name
		for n := 1; seen[unique]; n++ {
			unique = fmt.Sprintf("%s_%d", name, n)
		}
		seen[unique] = true
		out[i] = unique
	}
	return out
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
