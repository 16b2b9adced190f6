package models

import (
	"strconv"
	"strings"

	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

// ReadingListColumns is the on-disk column order of the reading-list table.
var ReadingListColumns = []string{"ListID", "UserID", "Name", "ISBNs", "IsPublic"}

// isbnSeparator joins the ISBN references inside the single ISBNs column.
const isbnSeparator = "|"

// ReadingList is one curated list. ISBNs are weak references resolved against
// the book catalog at read time; dangling entries are tolerated.
type ReadingList struct {
	ID       int      `json:"list_id"`
	UserID   int      `json:"user_id"`
	Name     string   `json:"name"`
	ISBNs    []string `json:"isbns"`
	IsPublic bool     `json:"is_public"`
}

// Contains reports whether the list already references the ISBN.
func (l *ReadingList) Contains(isbn string) bool {
	for _, b := range l.ISBNs {
		if b == isbn {
			return true
		}
	}
	return false
}

func (l *ReadingList) Record() csvstore.Record {
	return csvstore.Record{
		"ListID":   strconv.Itoa(l.ID),
		"UserID":   strconv.Itoa(l.UserID),
		"Name":     l.Name,
		"ISBNs":    strings.Join(l.ISBNs, isbnSeparator),
		"IsPublic": formatBool(l.IsPublic),
	}
}

func ReadingListFromRecord(rec csvstore.Record) (*ReadingList, error) {
	id, err := strconv.Atoi(rec["ListID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad list id %q", rec["ListID"])
	}
	userID, err := strconv.Atoi(rec["UserID"])
	if err != nil {
		return nil, errors.Wrapf(err, "bad user id %q on list %d", rec["UserID"], id)
	}
	var isbns []string
	if raw := rec["ISBNs"]; raw != "" {
		isbns = strings.Split(raw, isbnSeparator)
	}
	return &ReadingList{
		ID:       id,
		UserID:   userID,
		Name:     rec["Name"],
		ISBNs:    isbns,
		IsPublic: parseBool(rec["IsPublic"]),
	}, nil
}

// ReadingListEntry is one display-ready row of a resolved list: the stored
// ISBN joined against the book catalog, with placeholders when the book row is
// missing.
type ReadingListEntry struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ReadingListDetail is a list with its references resolved.
type ReadingListDetail struct {
	ID       int                `json:"list_id"`
	UserID   int                `json:"user_id"`
	Name     string             `json:"name"`
	IsPublic bool               `json:"is_public"`
	Books    []ReadingListEntry `json:"books"`
}

// ReadingListSummary is the public view of a list.
type ReadingListSummary struct {
	ID         int    `json:"list_id"`
	Name       string `json:"name"`
	TotalBooks int    `json:"total_books"`
}
