package discography

import "github.com/handiism/discography-sync/internal/model"

// Aggregate groups rows by year.
//
// Rows missing a year or a title are dropped. Within a year, items keep the
// order of rows; the result never depends on the order in which images were
// resolved.
func Aggregate(rows []model.Row) model.DiscographyData {
	data := model.DiscographyData{}
	for _, row := range rows {
		if !row.Complete() {
			continue
		}
		data.Add(row.Year, row.Item())
	}
	return data
}
