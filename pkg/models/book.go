// Package models holds the typed rows for every table and their conversion
// to and from the on-disk string records. Column-name strings live here and
// nowhere else; services only see typed structs.
package models

import "github.com/openshelf/openshelf/pkg/csvstore"

// BookColumns is the on-disk column order of the book catalog.
var BookColumns = []string{"ISBN", "Title", "Author", "Year", "Publisher", "ImageS", "ImageM", "ImageL"}

// Book is one catalog entry, keyed by ISBN. Year, publisher, and image URLs
// are optional and stored as empty strings when absent.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      string `json:"year,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	ImageS    string `json:"image_url_s,omitempty"`
	ImageM    string `json:"image_url_m,omitempty"`
	ImageL    string `json:"image_url_l,omitempty"`
}

func (b *Book) Record() csvstore.Record {
	return csvstore.Record{
		"ISBN":      b.ISBN,
		"Title":     b.Title,
		"Author":    b.Author,
		"Year":      b.Year,
		"Publisher": b.Publisher,
		"ImageS":    b.ImageS,
		"ImageM":    b.ImageM,
		"ImageL":    b.ImageL,
	}
}

func BookFromRecord(r csvstore.Record) *Book {
	return &Book{
		ISBN:      r["ISBN"],
		Title:     r["Title"],
		Author:    r["Author"],
		Year:      r["Year"],
		Publisher: r["Publisher"],
		ImageS:    r["ImageS"],
		ImageM:    r["ImageM"],
		ImageL:    r["ImageL"],
	}
}
