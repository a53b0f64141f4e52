package sheets

import (
	"fmt"
	"strings"
)

// PublishedIDPrefix marks ids issued by "File > Share > Publish to web".
// They are distinct from the spreadsheet's own id.
const PublishedIDPrefix = "2PACX"

// DefaultGID is the gid of the first tab of a spreadsheet.
const DefaultGID = "0"

const (
	publishedURLFormat = "https://docs.google.com/spreadsheets/d/e/%s/pub?gid=%s&single=true&output=csv"
	exportURLFormat    = "https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s"
)

// CSVURL derives the CSV export address for one tab of a spreadsheet.
//
// source may take one of three shapes, checked in this order:
//  1. A full URL (http:// or https://): returned unchanged, gid is ignored
//  2. A published id (starts with "2PACX"): a publish-to-web CSV URL
//  3. Anything else is treated as a spreadsheet id: a direct export URL
//
// An empty gid selects the first tab.
//
// Example:
//
//	CSVURL("ABC123", "0")
//	// "https://docs.google.com/spreadsheets/d/ABC123/export?format=csv&gid=0"
//	CSVURL("2PACX-1vXYZ", "42")
//	// "https://docs.google.com/spreadsheets/d/e/2PACX-1vXYZ/pub?gid=42&single=true&output=csv"
func CSVURL(source, gid string) string {
	if gid == "" {
		gid = DefaultGID
	}

	if hasURLScheme(source) {
		return source
	}

	if strings.HasPrefix(source, PublishedIDPrefix) {
		return fmt.Sprintf(publishedURLFormat, source, gid)
	}

	return fmt.Sprintf(exportURLFormat, source, gid)
}

func hasURLScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
