// Package model defines the core data structures used throughout
// the discography-sync application.
//
// # Row
//
// Row is one normalized spreadsheet row. It only lives for the duration of a
// sync run:
//
//	row := model.Row{Year: model.NormalizeYear("2020.0"), Title: "First Light"}
//	fmt.Println(row.Year) // "2020"
//
// # DiscographyItem
//
// DiscographyItem is one releasable work as handed to renderers:
//
//	item := row.Item()
//	if item.ImageURL != nil {
//	    fmt.Println(*item.ImageURL) // "/img/googledrive/2020-First_Light-abc.jpg"
//	}
//
// # DiscographyData
//
// DiscographyData groups items by year. Renderers iterate Years(), which
// yields the newest year first:
//
//	for _, year := range data.Years() {
//	    for _, item := range data[year] {
//	        fmt.Println(year, item.Title)
//	    }
//	}
package model
