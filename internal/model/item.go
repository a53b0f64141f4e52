package model

import (
	"sort"
	"strconv"
)

// DiscographyItem represents one releasable work (album, single, EP...).
//
// ImageURL is either a remote reference, a path into the local image cache,
// or nil when the row had no image at all. It is never a pointer to an empty
// string.
type DiscographyItem struct {
	// Title is the release title.
	Title string `json:"title"`

	// Type is the free-form release type, e.g. "Album" or "Single".
	Type string `json:"type"`

	// Description is an optional note shown next to the type.
	Description string `json:"description"`

	// URL is the external "listen / buy" link.
	URL string `json:"url"`

	// ImageURL is the cover art reference, nil if absent.
	ImageURL *string `json:"imageUrl"`
}

// HasImage returns true if the item carries a cover art reference.
func (i DiscographyItem) HasImage() bool {
	return i.ImageURL != nil && *i.ImageURL != ""
}

// DiscographyData maps a year to the items released in that year.
//
// Items keep the order of the source rows within a year.
type DiscographyData map[string][]DiscographyItem

// Add appends an item to the bucket for year, creating the bucket on first use.
func (d DiscographyData) Add(year string, item DiscographyItem) {
	d[year] = append(d[year], item)
}

// Count returns the total number of items across all years.
func (d DiscographyData) Count() int {
	n := 0
	for _, items := range d {
		n += len(items)
	}
	return n
}

// Years returns the year keys ordered newest first.
//
// Numeric years are compared by value. Keys that are not numbers sort after
// all numeric years, in descending lexical order.
//
// Example:
//
//	data := DiscographyData{"2019": nil, "2021": nil, "TBA": nil}
//	data.Years() // ["2021", "2019", "TBA"]
func (d DiscographyData) Years() []string {
	years := make([]string, 0, len(d))
	for year := range d {
		years = append(years, year)
	}

	sort.Slice(years, func(a, b int) bool {
		na, errA := strconv.Atoi(years[a])
		nb, errB := strconv.Atoi(years[b])
		switch {
		case errA == nil && errB == nil:
			return na > nb
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return years[a] > years[b]
		}
	})

	return years
}
