package model

import (
	"reflect"
	"testing"
)

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2020", "2020"},
		{" 2020 ", "2020"},
		{"2020.0", "2020"},
		{"02020", "2020"},
		{"2020.5", "2020.5"},
		{"1e20", "1e20"},
		{"9999999999999999999", "9999999999999999999"},
		{"-1e19", "-1e19"},
		{"2.02e3", "2020"},
		{"TBA", "TBA"},
		{"  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeYear(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeYear(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewRow(t *testing.T) {
	row := NewRow(map[string]string{
		"year":        "2021.0",
		"title":       "  Night Drive ",
		"type":        "Single",
		"description": "",
		"url":         "https://example.com/night-drive",
		"imageUrl":    "https://drive.google.com/open?id=abc",
		"label":       "Self-released",
	})

	if row.Year != "2021" {
		t.Errorf("Year = %q, want %q", row.Year, "2021")
	}
	if row.Title != "Night Drive" {
		t.Errorf("Title = %q, want %q", row.Title, "Night Drive")
	}
	if row.ImageURL != "https://drive.google.com/open?id=abc" {
		t.Errorf("ImageURL = %q", row.ImageURL)
	}
	if row.Extra["label"] != "Self-released" {
		t.Errorf("Extra[label] = %q, want %q", row.Extra["label"], "Self-released")
	}
	if !row.Complete() {
		t.Error("Complete() should return true when year and title are set")
	}
}

func TestRow_Complete(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"both set", Row{Year: "2020", Title: "X"}, true},
		{"missing title", Row{Year: "2020"}, false},
		{"missing year", Row{Title: "X"}, false},
		{"empty", Row{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRow_Item(t *testing.T) {
	item := Row{Year: "2020", Title: "X", ImageURL: ""}.Item()
	if item.ImageURL != nil {
		t.Errorf("ImageURL should be nil for an empty image cell, got %q", *item.ImageURL)
	}
	if item.HasImage() {
		t.Error("HasImage() should return false without an image")
	}

	item = Row{Year: "2020", Title: "X", ImageURL: "/img/googledrive/a.jpg"}.Item()
	if item.ImageURL == nil || *item.ImageURL != "/img/googledrive/a.jpg" {
		t.Errorf("ImageURL = %v, want %q", item.ImageURL, "/img/googledrive/a.jpg")
	}
}

func TestDiscographyData_Years(t *testing.T) {
	data := DiscographyData{
		"2019": nil,
		"2021": nil,
		"999":  nil,
		"TBA":  nil,
		"Demo": nil,
	}

	got := data.Years()
	want := []string{"2021", "2019", "999", "TBA", "Demo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}
}

func TestDiscographyData_AddAndCount(t *testing.T) {
	data := DiscographyData{}
	data.Add("2020", DiscographyItem{Title: "A"})
	data.Add("2020", DiscographyItem{Title: "B"})
	data.Add("2021", DiscographyItem{Title: "C"})

	if data.Count() != 3 {
		t.Errorf("Count() = %d, want 3", data.Count())
	}
	if data["2020"][0].Title != "A" || data["2020"][1].Title != "B" {
		t.Errorf("bucket order not preserved: %+v", data["2020"])
	}
}
