// Package sheets locates and parses the published discography spreadsheet.
//
// The package handles two concerns:
//
//  1. Deriving the CSV export URL from the configured spreadsheet reference
//  2. Parsing the exported CSV into normalized model.Row values
//
// # Locating the CSV
//
// The configured reference may be a full URL, a publish-to-web id or a
// plain spreadsheet id:
//
//	url := sheets.CSVURL("2PACX-1vQ...", "0")
//
// # Parsing
//
//	rows, err := sheets.Parse(csvText)
//	if errors.Is(err, sheets.ErrParse) {
//	    log.Fatal(err)
//	}
//
// # Sheet Format
//
// The sheet is expected to have the columns year, title, type, description,
// url and imageUrl. Extra columns are kept on the row but not used.
package sheets
