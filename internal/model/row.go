package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Column names of the discography sheet.
const (
	ColumnYear        = "year"
	ColumnTitle       = "title"
	ColumnType        = "type"
	ColumnDescription = "description"
	ColumnURL         = "url"
	ColumnImageURL    = "imageUrl"
)

// Row is a single spreadsheet row after normalization.
//
// All fields are plain strings; numeric cells have already been coerced to
// their canonical text form by NewRow, so Year can be used as a map key as is.
type Row struct {
	// Year is the release year, e.g. "2020". Empty if the cell was blank.
	Year string

	// Title is the release title. Empty if the cell was blank.
	Title string

	Type        string
	Description string
	URL         string

	// ImageURL starts out as the sheet value and is rewritten to the cached
	// path when the image is resolved.
	ImageURL string

	// Extra holds cells of columns the pipeline does not know about.
	Extra map[string]string
}

// NewRow builds a Row from a header-keyed record.
//
// Values are trimmed and the year is passed through NormalizeYear. Columns
// other than the known ones end up in Extra.
func NewRow(record map[string]string) Row {
	var row Row
	for key, value := range record {
		value = strings.TrimSpace(value)
		switch key {
		case ColumnYear:
			row.Year = NormalizeYear(value)
		case ColumnTitle:
			row.Title = value
		case ColumnType:
			row.Type = value
		case ColumnDescription:
			row.Description = value
		case ColumnURL:
			row.URL = value
		case ColumnImageURL:
			row.ImageURL = value
		default:
			if row.Extra == nil {
				row.Extra = make(map[string]string)
			}
			row.Extra[key] = value
		}
	}
	return row
}

// Complete reports whether the row has both fields required to be listed.
func (r Row) Complete() bool {
	return r.Year != "" && r.Title != ""
}

// Item converts the row into a DiscographyItem. An empty ImageURL becomes nil.
func (r Row) Item() DiscographyItem {
	item := DiscographyItem{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		URL:         r.URL,
	}
	if r.ImageURL != "" {
		imageURL := r.ImageURL
		item.ImageURL = &imageURL
	}
	return item
}

// NormalizeYear returns the canonical text form of a year cell.
//
// Integral numbers are printed without fraction or padding, so "2020",
// " 2020 " and "2020.0" all become "2020". Anything that is not an integral
// number, or a number too large for an int64, is only trimmed.
//
// Example:
//
//	NormalizeYear("2020.0") // "2020"
//	NormalizeYear("TBA")    // "TBA"
func NormalizeYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return strconv.FormatInt(n, 10)
	}
	if errors.Is(err, strconv.ErrRange) {
		return value
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return value
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if math.Abs(f) >= math.MaxInt64 {
		return value
	}
	return strconv.FormatInt(int64(f), 10)
}
